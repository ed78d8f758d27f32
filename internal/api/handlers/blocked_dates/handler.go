package blocked_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidTenantID    = "некорректный ID барбершопа"
	msgInvalidBlockID     = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBlockedDate = "некорректные параметры блокировки"
	msgNotFound           = "блокировка не найдена"
)

const defaultListHorizonDays = 90

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

// HandleList GET /api/v1/tenants/{tenantId}/blocked-dates
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/blocked-dates - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := now, now.AddDate(0, 0, defaultListHorizonDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/blocked-dates - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/blocked-dates - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.ListBlockedDates(r.Context(), tenantID, from, to)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/blocked-dates - Failed to list blocked dates: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/blocked-dates - Blocked dates retrieved: tenant_id=%d, count=%d",
		tenantID, len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/tenants/{tenantId}/blocked-dates
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/blocked-dates - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.CreateBlockedDate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/blocked-dates - Invalid blocked date: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidBlockedDate)

		default:
			h.logger.Error("POST /tenants/{id}/blocked-dates - Failed to create blocked date: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/blocked-dates - Blocked date created: tenant_id=%d, id=%d, date=%s",
		tenantID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/tenants/{tenantId}/blocked-dates/{blockId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/blocked-dates/{id} - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/blocked-dates/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), tenantID, blockID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /tenants/{id}/blocked-dates/{id} - Not found: tenant_id=%d, block_id=%d",
				tenantID, blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /tenants/{id}/blocked-dates/{id} - Failed to delete: tenant_id=%d, block_id=%d, error=%v",
				tenantID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/blocked-dates/{id} - Blocked date deleted: tenant_id=%d, block_id=%d",
		tenantID, blockID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
