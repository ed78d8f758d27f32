package validate_datetime

import (
	"context"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория источников расписаний
type ScheduleRepository interface {
	IsDateBlocked(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (bool, error)
	GetSpecialDay(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (*domain.SpecialDay, error)
	GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error)
	GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error)
	GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error)
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
