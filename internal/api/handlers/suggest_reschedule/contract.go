package suggest_reschedule

import (
	"context"

	suggestReschedule "github.com/barbersmart/BS-AvailabilityService/internal/usecase/suggest_reschedule"
)

type SuggestRescheduleUseCase interface {
	Execute(ctx context.Context, req *suggestReschedule.Request) (*suggestReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
