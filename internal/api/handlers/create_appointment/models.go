package create_appointment

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	createAppointment "github.com/barbersmart/BS-AvailabilityService/internal/usecase/create_appointment"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	UnitID        int64   `json:"unitId"`
	StaffID       int64   `json:"staffId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerPhone string  `json:"customerPhone"`
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	UnitID          int64   `json:"unitId"`
	StaffID         int64   `json:"staffId"`
	CustomerID      int64   `json:"customerId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	CustomerPhone   string  `json:"customerPhone"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID, customerID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		TenantID:      tenantID,
		UnitID:        r.UnitID,
		StaffID:       r.StaffID,
		CustomerID:    customerID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	a := resp.Appointment

	return &AppointmentResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		UnitID:          a.UnitID,
		StaffID:         a.StaffID,
		CustomerID:      a.CustomerID,
		ServiceID:       a.ServiceID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		CustomerPhone:   a.CustomerPhone,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}
