package suggest_reschedule

import (
	"context"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/infra/cache/conversation"
	"github.com/barbersmart/BS-AvailabilityService/internal/integrations/messaging"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// ScheduleRepository интерфейс репозитория источников расписаний
type ScheduleRepository interface {
	IsDateBlocked(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (bool, error)
	GetSpecialDay(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (*domain.SpecialDay, error)
	GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error)
	GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error)
}

// ConversationStore внешнее хранилище контекстов диалогов с TTL
type ConversationStore interface {
	Put(ctx context.Context, conv *conversation.Context) error
}

// MessagingClient интерфейс шлюза сообщений клиентам
type MessagingClient interface {
	SendTemplate(ctx context.Context, phone, template string, params map[string]string) (*messaging.SendResult, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
