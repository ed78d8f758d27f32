package validate_datetime

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	validateDatetime "github.com/barbersmart/BS-AvailabilityService/internal/usecase/validate_datetime"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// ValidationResponse HTTP response model
type ValidationResponse struct {
	IsValid        bool            `json:"isValid"`
	Reason         string          `json:"reason,omitempty"`
	AvailableHours *AvailableHours `json:"availableHours,omitempty"`
}

// AvailableHours эффективное рабочее окно дня
type AvailableHours struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tenantID int64, unitID, staffID *int64, dateStr string, timeStr string) (*validateDatetime.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	var timeValue *types.TimeString
	if timeStr != "" {
		ts, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return nil, err
		}
		timeValue = &ts
	}

	return &validateDatetime.Request{
		TenantID: tenantID,
		UnitID:   unitID,
		StaffID:  staffID,
		Date:     date,
		Time:     timeValue,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateDatetime.Response) *ValidationResponse {
	out := &ValidationResponse{
		IsValid: resp.Result.IsValid,
		Reason:  resp.Result.Reason,
	}

	if hours := resp.Result.AvailableHours; hours != nil {
		out.AvailableHours = &AvailableHours{
			Start:      hours.Start.String(),
			End:        hours.End.String(),
			BreakStart: timeStringPtr(hours.BreakStart),
			BreakEnd:   timeStringPtr(hours.BreakEnd),
		}
	}

	return out
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
