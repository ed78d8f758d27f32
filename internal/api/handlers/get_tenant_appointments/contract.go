package get_tenant_appointments

import (
	"context"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetTenantAppointments(ctx context.Context, req *models.GetTenantAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
