package suggest_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	suggestReschedule "github.com/barbersmart/BS-AvailabilityService/internal/usecase/suggest_reschedule"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgNotEligible          = "запись нельзя пометить как неявку"
	msgNoSuggestions        = "нет свободных слотов для предложения переноса"
)

// NoShowRequest HTTP request model
type NoShowRequest struct {
	TenantID int64 `json:"tenantId"`
}

type Handler struct {
	useCase SuggestRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase SuggestRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/no-show
// Помечает запись как неявку и предлагает клиенту варианты переноса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req NoShowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &suggestReschedule.Request{
		AppointmentID: appointmentID,
		TenantID:      req.TenantID,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, suggestReschedule.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/no-show - Appointment not found: appointment_id=%d, tenant_id=%d",
				appointmentID, req.TenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, suggestReschedule.ErrAppointmentNotEligible):
			h.logger.Warn("POST /appointments/{id}/no-show - Not eligible: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNotEligible)

		case errors.Is(err, suggestReschedule.ErrNoSuggestions):
			h.logger.Warn("POST /appointments/{id}/no-show - No suggestions: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNoSuggestions)

		case errors.Is(err, suggestReschedule.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/no-show - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments/{id}/no-show - Failed to suggest reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/no-show - Reschedule suggested: appointment_id=%d, suggestions=%d, message_sent=%t",
		appointmentID, len(result.Suggestions), result.MessageSent)
	handlers.RespondJSON(w, http.StatusOK, result)
}
