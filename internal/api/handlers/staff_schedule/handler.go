package staff_schedule

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
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректный график мастера"
	msgScheduleNotFound   = "график мастера не найден"
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

// HandleGet GET /api/v1/tenants/{tenantId}/staff/{staffId}/schedule
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, staffID, ok := h.parseIDs(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetStaffSchedule(r.Context(), tenantID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("GET /tenants/{id}/staff/{id}/schedule - Schedule not found: tenant_id=%d, staff_id=%d",
				tenantID, staffID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /tenants/{id}/staff/{id}/schedule - Failed to get schedule: tenant_id=%d, staff_id=%d, error=%v",
				tenantID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/staff/{id}/schedule - Schedule retrieved: tenant_id=%d, staff_id=%d",
		tenantID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/tenants/{tenantId}/staff/{staffId}/schedule
// Создает график мастера или заменяет существующий целиком
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	tenantID, staffID, ok := h.parseIDs(w, r, "PUT")
	if !ok {
		return
	}

	var req models.PutStaffScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/staff/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.TenantID = tenantID
	req.StaffID = staffID

	if err := h.service.PutStaffSchedule(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/staff/{id}/schedule - Invalid schedule: tenant_id=%d, staff_id=%d, error=%v",
				tenantID, staffID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /tenants/{id}/staff/{id}/schedule - Failed to put schedule: tenant_id=%d, staff_id=%d, error=%v",
				tenantID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/staff/{id}/schedule - Schedule saved: tenant_id=%d, staff_id=%d",
		tenantID, staffID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request, method string) (int64, int64, bool) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /tenants/{id}/staff/{id}/schedule - Invalid tenant ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return 0, 0, false
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /tenants/{id}/staff/{id}/schedule - Invalid staff ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return 0, 0, false
	}

	return tenantID, staffID, true
}
