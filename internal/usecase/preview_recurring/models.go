package preview_recurring

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/recurrence"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Request модель запроса на предпросмотр серии повторяющихся записей
type Request struct {
	TenantID           int64
	UnitID             *int64
	StaffID            *int64
	ServiceID          int64
	AnchorDate         time.Time        // Якорная дата серии
	Time               types.TimeString // Время всех записей серии
	Rule               domain.RecurrenceRule
	Count              int
	CustomIntervalDays *int // только для rule=custom
}

// DateResult результат проверки одной даты серии
type DateResult struct {
	Date      time.Time `json:"date"`
	Index     int       `json:"index"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// Response модель ответа с результатами по всем датам серии.
// Даты идут в порядке генерации (якорная первой).
type Response struct {
	TenantID       int64        `json:"tenantId"`
	ServiceID      int64        `json:"serviceId"`
	Dates          []DateResult `json:"dates"`
	AvailableCount int          `json:"availableCount"`
}

// ProgressFunc вызывается с промежуточными результатами по мере
// завершения партий проверок
type ProgressFunc = recurrence.ProgressFunc
