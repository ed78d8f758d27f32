package special_days

import (
	"context"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSpecialDays(ctx context.Context, tenantID int64, from, to time.Time) (*models.SpecialDayListResponse, error)
	CreateSpecialDay(ctx context.Context, req *models.CreateSpecialDayRequest) (*models.SpecialDayResponse, error)
	DeleteSpecialDay(ctx context.Context, tenantID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
