package domain

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// DaySchedule каноническое расписание на один день после нормализации.
// Все источники расписаний (часы работы, график мастера, особые дни)
// приводятся к этой форме перед разрешением правил.
type DaySchedule struct {
	Enabled    bool              `json:"enabled"`
	Start      types.TimeString  `json:"start"`
	End        types.TimeString  `json:"end"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// HasBreak возвращает true, если задано окно перерыва (оба конца)
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// IsValid проверяет инварианты расписания:
// если день рабочий - start < end; если есть перерыв - start <= breakStart < breakEnd <= end
func (d DaySchedule) IsValid() bool {
	if !d.Enabled {
		return true
	}
	if !d.Start.IsBefore(d.End) {
		return false
	}
	if d.BreakStart == nil && d.BreakEnd == nil {
		return true
	}
	if d.BreakStart == nil || d.BreakEnd == nil {
		return false
	}
	if d.Start.IsAfter(*d.BreakStart) {
		return false
	}
	if !d.BreakStart.IsBefore(*d.BreakEnd) {
		return false
	}
	return !d.BreakEnd.IsAfter(d.End)
}

// WeekSchedule расписание на неделю, индекс - time.Weekday (0 = воскресенье)
type WeekSchedule [7]DaySchedule

// Day возвращает расписание на указанный день недели
func (w WeekSchedule) Day(weekday time.Weekday) DaySchedule {
	return w[int(weekday)]
}

// BusinessHours строка часов работы барбершопа на день недели.
// Одна строка на день недели, глобально для тенанта или отдельной точки.
type BusinessHours struct {
	ID         int64
	TenantID   int64
	UnitID     *int64 // NULL = для всех точек тенанта
	DayOfWeek  int    // 0-6, 0 = воскресенье
	IsOpen     bool
	OpenTime   *types.TimeString
	CloseTime  *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StaffSchedule индивидуальный график мастера: расписание по дням недели
// с опциональными переопределениями для отдельных точек
type StaffSchedule struct {
	ID            int64
	TenantID      int64
	StaffID       int64
	Week          WeekSchedule
	UnitOverrides map[int64]WeekSchedule // ключ - ID точки
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WeekFor возвращает недельный график мастера с учетом переопределения для точки.
// Если для точки переопределения нет - возвращается график по умолчанию.
func (s *StaffSchedule) WeekFor(unitID *int64) WeekSchedule {
	if unitID != nil {
		if week, ok := s.UnitOverrides[*unitID]; ok {
			return week
		}
	}
	return s.Week
}

// SpecialDay разовое переопределение расписания на конкретную дату
// (праздник, сокращенный день). Приоритетнее недельных правил.
type SpecialDay struct {
	ID         int64
	TenantID   int64
	UnitID     *int64
	Date       time.Time // только дата, время обнулено
	IsOpen     bool
	OpenTime   *types.TimeString
	CloseTime  *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BlockedDate полное закрытие на дату. Приоритетнее всего, включая особые дни.
type BlockedDate struct {
	ID        int64
	TenantID  int64
	UnitID    *int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// BookingPolicy политика бронирования тенанта
type BookingPolicy struct {
	ID                      int64
	TenantID                int64
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit возвращает true, если есть ограничение горизонта бронирования
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultBookingPolicy возвращает политику с дефолтными значениями
func DefaultBookingPolicy(tenantID int64) *BookingPolicy {
	return &BookingPolicy{
		TenantID:                tenantID,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
