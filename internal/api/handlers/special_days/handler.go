package special_days

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
	msgInvalidDayID       = "некорректный ID особого дня"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSpecialDay  = "некорректные параметры особого дня"
	msgNotFound           = "особый день не найден"
)

// defaultListHorizonDays горизонт списка по умолчанию, когда границы
// периода не заданы
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

// HandleList GET /api/v1/tenants/{tenantId}/special-days
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/special-days - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := now, now.AddDate(0, 0, defaultListHorizonDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/special-days - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/special-days - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.ListSpecialDays(r.Context(), tenantID, from, to)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/special-days - Failed to list special days: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/special-days - Special days retrieved: tenant_id=%d, count=%d",
		tenantID, len(result.SpecialDays))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/tenants/{tenantId}/special-days
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/special-days - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.CreateSpecialDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/special-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.CreateSpecialDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/special-days - Invalid special day: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSpecialDay)

		default:
			h.logger.Error("POST /tenants/{id}/special-days - Failed to create special day: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/special-days - Special day created: tenant_id=%d, id=%d, date=%s",
		tenantID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/tenants/{tenantId}/special-days/{dayId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/special-days/{id} - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	dayID, err := strconv.ParseInt(vars["dayId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/special-days/{id} - Invalid day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	if err := h.service.DeleteSpecialDay(r.Context(), tenantID, dayID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSpecialDayNotFound):
			h.logger.Warn("DELETE /tenants/{id}/special-days/{id} - Not found: tenant_id=%d, day_id=%d",
				tenantID, dayID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /tenants/{id}/special-days/{id} - Failed to delete: tenant_id=%d, day_id=%d, error=%v",
				tenantID, dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/special-days/{id} - Special day deleted: tenant_id=%d, day_id=%d",
		tenantID, dayID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
