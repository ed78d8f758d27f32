package create_appointment

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID      int64
	UnitID        int64
	StaffID       int64
	CustomerID    int64
	ServiceID     int64
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала
	CustomerPhone string           // Телефон для уведомлений
	Notes         *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
