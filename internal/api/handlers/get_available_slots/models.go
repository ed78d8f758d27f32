package get_available_slots

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/barbersmart/BS-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	TenantID        int64           `json:"tenantId"`
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	Reason          string          `json:"reason,omitempty"`
	Hours           *AvailableHours `json:"hours,omitempty"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableHours эффективное рабочее окно дня
type AvailableHours struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	out := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TenantID:        resp.TenantID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Reason:          resp.Reason,
		Slots:           slots,
	}

	if resp.Hours != nil {
		out.Hours = &AvailableHours{
			Start:      resp.Hours.Start.String(),
			End:        resp.Hours.End.String(),
			BreakStart: timeStringPtr(resp.Hours.BreakStart),
			BreakEnd:   timeStringPtr(resp.Hours.BreakEnd),
		}
	}

	return out
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tenantID, serviceID int64, unitID, staffID *int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantID:  tenantID,
		UnitID:    unitID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
