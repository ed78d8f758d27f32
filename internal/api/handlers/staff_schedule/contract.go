package staff_schedule

import (
	"context"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*models.StaffScheduleResponse, error)
	PutStaffSchedule(ctx context.Context, req *models.PutStaffScheduleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
