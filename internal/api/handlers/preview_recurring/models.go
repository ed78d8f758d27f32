package preview_recurring

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	previewRecurring "github.com/barbersmart/BS-AvailabilityService/internal/usecase/preview_recurring"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// PreviewRecurringRequest HTTP request model
type PreviewRecurringRequest struct {
	UnitID             *int64 `json:"unitId,omitempty"`
	StaffID            *int64 `json:"staffId,omitempty"`
	ServiceID          int64  `json:"serviceId"`
	AnchorDate         string `json:"anchorDate"` // "2025-10-15"
	Time               string `json:"time"`       // "10:00"
	Rule               string `json:"rule"`       // weekly | biweekly | monthly | custom
	Count              int    `json:"count"`
	CustomIntervalDays *int   `json:"customIntervalDays,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewRecurringRequest) ToUseCaseRequest(tenantID int64) (*previewRecurring.Request, error) {
	anchorDate, err := time.Parse(domain.DateFormat, r.AnchorDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &previewRecurring.Request{
		TenantID:           tenantID,
		UnitID:             r.UnitID,
		StaffID:            r.StaffID,
		ServiceID:          r.ServiceID,
		AnchorDate:         anchorDate,
		Time:               startTime,
		Rule:               domain.RecurrenceRule(r.Rule),
		Count:              r.Count,
		CustomIntervalDays: r.CustomIntervalDays,
	}, nil
}
