package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	appointmentRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/appointment"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свою запись; запрос со стороны барбершопа
// (tenantID != nil) сверяется с владельцем записи.
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64, tenantID *int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for customer=%d", id, customerID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(appt, customerID, tenantID); err != nil {
		s.logger.Warn("GetByID: access denied for customer=%d to appointment id=%d", customerID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appts, err := s.appointmentRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for customer=%d", len(appts), req.CustomerID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetTenantAppointments получает записи барбершопа с гибкой фильтрацией:
// по точке, мастеру, периоду, статусу и включению неактивных записей
func (s *Service) GetTenantAppointments(ctx context.Context, req *models.GetTenantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetTenantAppointments: fetching appointments for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantAppointments: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantAppointments: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantAppointments: fetched %d appointments for tenant=%d", len(appts), req.TenantID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет запись.
// Клиент отменяет свою запись (cancelled_by_customer), барбершоп - любую
// свою (cancelled_by_tenant). Завершенную или уже отмененную запись
// отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by customer=%d, byTenant=%t", id, req.CustomerID, req.ByTenant)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	status := domain.StatusCancelledByCustomer
	if req.ByTenant {
		status = domain.StatusCancelledByTenant
	} else if appt.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: customer=%d does not own appointment id=%d", req.CustomerID, id)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status %s cannot be cancelled", id, appt.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	if err := s.appointmentRepo.Cancel(ctx, id, status, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled with status %s", id, status)
	return nil
}

// UpdateStatus переводит запись в новый статус с проверкой допустимости перехода
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s", id, req.Status)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return ErrInvalidStatus
	}

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !isTransitionAllowed(appt.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d", appt.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to %s", id, newStatus)
	return nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// checkAccess проверяет права доступа к записи
func (s *Service) checkAccess(appt *domain.Appointment, customerID int64, tenantID *int64) error {
	if appt.CustomerID == customerID {
		return nil
	}
	if tenantID != nil && appt.TenantID == *tenantID {
		return nil
	}
	return ErrAccessDenied
}

// isTransitionAllowed проверяет допустимость перехода статуса.
// Отмены идут через Cancel, здесь только рабочие переходы.
func isTransitionAllowed(from, to domain.AppointmentStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusConfirmed || to == domain.StatusNoShow
	case domain.StatusConfirmed:
		return to == domain.StatusInProgress || to == domain.StatusNoShow
	case domain.StatusInProgress:
		return to == domain.StatusCompleted
	default:
		return false
	}
}
