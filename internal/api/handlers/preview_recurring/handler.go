package preview_recurring

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersmart/BS-AvailabilityService/internal/api/handlers"
	"github.com/barbersmart/BS-AvailabilityService/internal/recurrence"
	previewRecurring "github.com/barbersmart/BS-AvailabilityService/internal/usecase/preview_recurring"
)

const (
	msgInvalidTenantID    = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotEligible   = "мастер не выполняет эту услугу"
	msgInvalidRecurrence  = "некорректные параметры повторения"
)

type Handler struct {
	useCase PreviewRecurringUseCase
	logger  Logger
}

func NewHandler(useCase PreviewRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/recurring-preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/recurring-preview - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req PreviewRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/recurring-preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/recurring-preview - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Промежуточные результаты партий логируются; клиент получает
	// итоговый ответ, когда все партии завершены
	onProgress := func(partial map[string]recurrence.CheckResult) {
		h.logger.Info("POST /tenants/{id}/recurring-preview - Batch settled: tenant_id=%d, checked=%d",
			tenantID, len(partial))
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq, onProgress)
	if err != nil {
		switch {
		case errors.Is(err, previewRecurring.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/recurring-preview - Service not found: tenant_id=%d, service_id=%d",
				tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, previewRecurring.ErrStaffNotEligible):
			h.logger.Warn("POST /tenants/{id}/recurring-preview - Staff not eligible: tenant_id=%d, service_id=%d",
				tenantID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, previewRecurring.ErrInvalidRecurrence):
			h.logger.Warn("POST /tenants/{id}/recurring-preview - Invalid recurrence: tenant_id=%d, rule=%s, count=%d",
				tenantID, req.Rule, req.Count)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, previewRecurring.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/recurring-preview - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /tenants/{id}/recurring-preview - Failed to preview: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/recurring-preview - Preview completed: tenant_id=%d, dates=%d, available=%d",
		tenantID, len(result.Dates), result.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
