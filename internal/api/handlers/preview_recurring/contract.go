package preview_recurring

import (
	"context"

	previewRecurring "github.com/barbersmart/BS-AvailabilityService/internal/usecase/preview_recurring"
)

type PreviewRecurringUseCase interface {
	Execute(ctx context.Context, req *previewRecurring.Request, onProgress previewRecurring.ProgressFunc) (*previewRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
