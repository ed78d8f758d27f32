package booking_policy

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректные параметры политики бронирования"
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

// HandleGet GET /api/v1/tenants/{tenantId}/policy
// При отсутствии настроенной политики возвращает дефолтную
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/policy - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	result, err := h.service.GetBookingPolicy(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/policy - Failed to get policy: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/policy - Policy retrieved: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/tenants/{tenantId}/policy
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/policy - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.UpsertBookingPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.UpsertBookingPolicy(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/policy - Invalid policy: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /tenants/{id}/policy - Failed to upsert policy: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/policy - Policy saved: tenant_id=%d, advance_days=%d, notice_minutes=%d",
		tenantID, result.AdvanceBookingDays, result.MinBookingNoticeMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
