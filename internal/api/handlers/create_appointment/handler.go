package create_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	"github.com/barbersmart/BS-AvailabilityService/internal/api/middleware"
	createAppointment "github.com/barbersmart/BS-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidTenantID    = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgTenantNotFound     = "барбершоп не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotEligible   = "мастер не выполняет эту услугу"
	msgInvalidDate        = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgDateUnavailable    = "выбранные дата или время недоступны"
	msgSlotTaken          = "выбранный слот уже занят"
	msgInvalidTimeSlot    = "время начала должно быть кратно 30 минутам"
	msgTooLateToBook      = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tenants/{id}/appointments - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, customerID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Service not found: tenant_id=%d, service_id=%d",
				tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Staff not found: tenant_id=%d, staff_id=%d",
				tenantID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotEligible):
			h.logger.Warn("POST /tenants/{id}/appointments - Staff not eligible: tenant_id=%d, staff_id=%d, service_id=%d",
				tenantID, req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid date: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /tenants/{id}/appointments - Date too far: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrDateUnavailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Date unavailable: tenant_id=%d, date=%s, error=%v",
				tenantID, req.Date, err)
			handlers.RespondError(w, http.StatusConflict, msgDateUnavailable)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /tenants/{id}/appointments - Slot taken: tenant_id=%d, date=%s, time=%s",
				tenantID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid time slot: tenant_id=%d, time=%s",
				tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /tenants/{id}/appointments - Too late to book: tenant_id=%d, date=%s, time=%s",
				tenantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /tenants/{id}/appointments - Failed to create appointment: tenant_id=%d, customer_id=%d, error=%v",
				tenantID, customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tenants/{id}/appointments - Appointment created: id=%d, tenant_id=%d, customer_id=%d, date=%s, time=%s",
		response.ID, tenantID, customerID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
