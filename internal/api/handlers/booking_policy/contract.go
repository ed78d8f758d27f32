package booking_policy

import (
	"context"

	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBookingPolicy(ctx context.Context, tenantID int64) (*models.BookingPolicyResponse, error)
	UpsertBookingPolicy(ctx context.Context, req *models.UpsertBookingPolicyRequest) (*models.BookingPolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
