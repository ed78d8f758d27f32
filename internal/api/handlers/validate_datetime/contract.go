package validate_datetime

import (
	"context"

	validateDatetime "github.com/barbersmart/BS-AvailabilityService/internal/usecase/validate_datetime"
)

type ValidateDatetimeUseCase interface {
	Execute(ctx context.Context, req *validateDatetime.Request) (*validateDatetime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
