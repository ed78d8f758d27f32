package business_hours

import (
	"context"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) (*models.BusinessWeekResponse, error)
	ReplaceBusinessHours(ctx context.Context, req *models.ReplaceBusinessHoursRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
