package validate_datetime

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	validateDatetime "github.com/barbersmart/BS-AvailabilityService/internal/usecase/validate_datetime"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

const (
	msgInvalidTenantID = "некорректный ID барбершопа"
	msgInvalidUnitID   = "некорректный ID точки"
	msgInvalidStaffID  = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgTooLateToBook   = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase ValidateDatetimeUseCase
	logger  Logger
}

func NewHandler(useCase ValidateDatetimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/validate-datetime
// Query params: date (required, YYYY-MM-DD), time (optional, HH:MM),
// unitId, staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	unitID, err := optionalInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	staffID, err := optionalInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/validate-datetime - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := r.URL.Query().Get("time")
	if timeStr != "" {
		if _, err := types.NewTimeStringFromString(timeStr); err != nil {
			h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid time format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, unitID, staffID, dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateDatetime.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, validateDatetime.ErrInvalidDate):
			h.logger.Warn("GET /tenants/{id}/validate-datetime - Invalid date: tenant_id=%d, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, validateDatetime.ErrDateTooFarInFuture):
			h.logger.Warn("GET /tenants/{id}/validate-datetime - Date too far: tenant_id=%d, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, validateDatetime.ErrTooLateToBook):
			h.logger.Warn("GET /tenants/{id}/validate-datetime - Too late to book: tenant_id=%d, date=%s, time=%s", tenantID, dateStr, timeStr)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("GET /tenants/{id}/validate-datetime - Failed to validate: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tenants/{id}/validate-datetime - Validated: tenant_id=%d, date=%s, is_valid=%t",
		tenantID, dateStr, response.IsValid)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// optionalInt64 парсит опциональный числовой query параметр
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
