package cancel_appointment

import (
	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	ByTenant           bool   `json:"byTenant,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(customerID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		CustomerID:         customerID,
		ByTenant:           r.ByTenant,
		CancellationReason: r.CancellationReason,
	}
}
