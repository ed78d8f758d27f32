package domain

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusInProgress          AppointmentStatus = "in_progress"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByCustomer AppointmentStatus = "cancelled_by_customer"
	StatusCancelledByTenant   AppointmentStatus = "cancelled_by_tenant"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment запись клиента к мастеру
type Appointment struct {
	ID              int64
	TenantID        int64
	UnitID          int64 // точка (у тенанта может быть несколько)
	StaffID         int64
	CustomerID      int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные для истории и рассылок
	ServiceName   string
	CustomerPhone string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByCustomer &&
		a.Status != StatusCancelledByTenant &&
		a.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled возвращает true, если запись отменена
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByCustomer || a.Status == StatusCancelledByTenant
}

// IsFinished возвращает true, если запись завершена или клиент не пришел
func (a *Appointment) IsFinished() bool {
	return a.Status == StatusCompleted || a.Status == StatusNoShow
}

// BookedInterval занятый интервал времени, используется проверкой пересечений
type BookedInterval struct {
	StartMinutes    int
	DurationMinutes int
}

// ToBookedInterval приводит запись к занятому интервалу
func (a *Appointment) ToBookedInterval() BookedInterval {
	return BookedInterval{
		StartMinutes:    a.StartTime.MinutesOfDay(),
		DurationMinutes: a.DurationMinutes,
	}
}

// TenantAppointmentsFilter фильтр для получения записей тенанта
type TenantAppointmentsFilter struct {
	TenantID        int64              // Обязательный параметр
	UnitID          *int64             // Фильтр по точке (опционально)
	StaffID         *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show
}

// InactiveStatuses статусы записей, не занимающих слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByCustomer,
	StatusCancelledByTenant,
	StatusNoShow,
}
