package schedule

import (
	"context"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория источников расписаний
type ScheduleRepository interface {
	GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, tenantID int64, unitID *int64, rows []*domain.BusinessHours) error

	GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error)
	CreateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) (*domain.StaffSchedule, error)
	UpdateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) error

	ListSpecialDays(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.SpecialDay, error)
	CreateSpecialDay(ctx context.Context, day *domain.SpecialDay) (*domain.SpecialDay, error)
	DeleteSpecialDay(ctx context.Context, tenantID, id int64) error

	ListBlockedDates(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, tenantID, id int64) error

	GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error)
	UpsertBookingPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
