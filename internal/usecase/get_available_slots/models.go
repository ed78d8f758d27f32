package get_available_slots

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID  int64     // ID барбершопа
	UnitID    *int64    // ID точки (опционально)
	StaffID   *int64    // ID мастера (опционально)
	ServiceID int64     // ID услуги (определяет длительность)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time              // Дата, на которую запрашивались слоты
	TenantID        int64                  // ID барбершопа
	ServiceID       int64                  // ID услуги
	DurationMinutes int                    // Длительность услуги
	Reason          string                 // Причина пустого списка, если день закрыт
	Slots           []Slot                 // Список доступных слотов
	Hours           *domain.AvailableHours // Эффективное рабочее окно дня, если оно есть
}

// Slot модель доступного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания услуги
}
