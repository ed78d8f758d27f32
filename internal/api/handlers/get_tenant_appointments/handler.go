package get_tenant_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments/models"
)

const (
	msgInvalidTenantID = "некорректный ID барбершопа"
	msgInvalidUnitID   = "некорректный ID точки"
	msgInvalidStaffID  = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/appointments
// Query params: unitId, staffId, startDate, endDate, status,
// includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	req := &models.GetTenantAppointmentsRequest{TenantID: tenantID}

	req.UnitID, err = optionalInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	req.StaffID, err = optionalInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req.StartDate, err = optionalDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req.EndDate, err = optionalDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.GetTenantAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /tenants/{id}/appointments - Invalid status filter: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /tenants/{id}/appointments - Failed to get appointments: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/appointments - Appointments retrieved: tenant_id=%d, count=%d",
		tenantID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func optionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func optionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
