package directory

// Tenant модель барбершопа из справочника
type Tenant struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Timezone string  `json:"timezone"`
	IsActive bool    `json:"is_active"`
	Units    []Unit  `json:"units"`
	Staff    []Staff `json:"staff"`
}

// Unit точка (филиал) барбершопа
type Unit struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

// Staff мастер барбершопа
type Staff struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	UnitID   *int64 `json:"unit_id,omitempty"` // NULL = работает на всех точках
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Service услуга барбершопа из справочника
type Service struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenant_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
	StaffIDs        []int64 `json:"staff_ids"` // мастера, выполняющие услугу; пусто = все
}

// PerformedBy возвращает true, если услугу может выполнить указанный мастер
func (s *Service) PerformedBy(staffID int64) bool {
	if len(s.StaffIDs) == 0 {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
