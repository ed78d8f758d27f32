package business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidTenantID    = "некорректный ID барбершопа"
	msgInvalidUnitID      = "некорректный ID точки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/tenants/{tenantId}/business-hours
// Query params: unitId (опционально)
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, unitID, ok := h.parseIDs(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetBusinessWeek(r.Context(), tenantID, unitID)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/business-hours - Failed to get business hours: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/business-hours - Business hours retrieved: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/tenants/{tenantId}/business-hours
// Заменяет часы работы целиком; отсутствующий в теле день считается закрытым
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	tenantID, unitID, ok := h.parseIDs(w, r, "PUT")
	if !ok {
		return
	}

	var req models.ReplaceBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Идентификаторы берутся из URL, а не из тела
	req.TenantID = tenantID
	req.UnitID = unitID

	if err := h.service.ReplaceBusinessHours(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/business-hours - Invalid schedule: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /tenants/{id}/business-hours - Failed to replace business hours: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/business-hours - Business hours replaced: tenant_id=%d, days=%d",
		tenantID, len(req.Days))
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request, method string) (int64, *int64, bool) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /tenants/{id}/business-hours - Invalid tenant ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return 0, nil, false
	}

	var unitID *int64
	if raw := r.URL.Query().Get("unitId"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("%s /tenants/{id}/business-hours - Invalid unit ID: %v", method, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)
			return 0, nil, false
		}
		unitID = &value
	}

	return tenantID, unitID, true
}
