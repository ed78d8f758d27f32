package blocked_dates

import (
	"context"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, tenantID int64, from, to time.Time) (*models.BlockedDateListResponse, error)
	CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
	DeleteBlockedDate(ctx context.Context, tenantID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
