package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
)

// UseCase use case создания записи клиента к мастеру
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directory:       directory,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет создание записи.
// Проверка пересечений и вставка идут в сериализуемой транзакции:
// две конкурирующие попытки занять один интервал не пройдут обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%d, unit=%d, staff=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.UnitID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу из справочника
	service, err := uc.directory.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что мастер существует и выполняет услугу
	if _, err := uc.directory.GetStaff(ctx, req.TenantID, req.StaffID); err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if err := validateStaffPerformsService(service, req.StaffID); err != nil {
		uc.logger.Warn("CreateAppointment: staff id=%d does not perform service id=%d", req.StaffID, req.ServiceID)
		return nil, err
	}

	// 5. Получаем политику бронирования (дефолт при отсутствии)
	policy, err := uc.scheduleRepo.GetBookingPolicy(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateAppointment: failed to get booking policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(req.TenantID)
	}

	// 6. Валидация даты, сетки слотов и минимального интервала
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	startMinutes := req.StartTime.MinutesOfDay()

	if err := validateSlotGrid(startMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: slot grid validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(req.Date, startMinutes, now, policy.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
		return nil, err
	}

	// 7. Разрешаем расписание: дата и время должны быть доступны
	input, err := uc.fetchDayInput(ctx, req)
	if err != nil {
		return nil, err
	}

	result := scheduleEngine.Resolve(scheduleEngine.Query{
		Date:    req.Date,
		Time:    ptr.Ptr(req.StartTime),
		StaffID: ptr.Ptr(req.StaffID),
		UnitID:  ptr.Ptr(req.UnitID),
	}, input)

	if !result.IsValid {
		uc.logger.Warn("CreateAppointment: datetime unavailable for tenant=%d, date=%s, time=%s: %s",
			req.TenantID, req.Date.Format(domain.DateFormat), req.StartTime, result.Reason)
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, result.Reason)
	}

	// Услуга должна целиком помещаться в рабочее окно
	if result.AvailableHours != nil {
		endMinutes := startMinutes + service.DurationMinutes
		if endMinutes > result.AvailableHours.End.MinutesOfDay() {
			uc.logger.Warn("CreateAppointment: service does not fit before closing for tenant=%d", req.TenantID)
			return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, domain.ReasonOutsideHours)
		}
	}

	var created *domain.Appointment

	// 8. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Записи мастера на эту дату (блокируются FOR UPDATE)
		filter := domain.TenantAppointmentsFilter{
			TenantID:  req.TenantID,
			UnitID:    ptr.Ptr(req.UnitID),
			StaffID:   ptr.Ptr(req.StaffID),
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Пересечение интервалов: касание границ допустимо
		booked := scheduleEngine.ActiveIntervals(appointments)
		if scheduleEngine.HasOverlap(startMinutes, service.DurationMinutes, booked) {
			uc.logger.Warn("CreateAppointment: slot taken for staff=%d, date=%s, time=%s",
				req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotTaken
		}

		// 8.3. Создаем запись
		appointment := &domain.Appointment{
			TenantID:        req.TenantID,
			UnitID:          req.UnitID,
			StaffID:         req.StaffID,
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for tenant=%d, staff=%d, date=%s, time=%s",
		created.ID, req.TenantID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{Appointment: created}, nil
}

// fetchDayInput собирает предвыбранные источники расписаний на дату запроса
func (uc *UseCase) fetchDayInput(ctx context.Context, req *Request) (scheduleEngine.DayInput, error) {
	var input scheduleEngine.DayInput
	unitID := ptr.Ptr(req.UnitID)

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.TenantID, unitID, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check blocked date: %v", err)
		return input, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	input.Blocked = blocked

	if blocked {
		return input, nil
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, req.TenantID, unitID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		uc.logger.Error("CreateAppointment: failed to get special day: %v", err)
		return input, fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
	}
	input.Special = special

	staff, err := uc.scheduleRepo.GetStaffSchedule(ctx, req.TenantID, req.StaffID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreateAppointment: failed to get staff schedule: %v", err)
		return input, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}
	input.Staff = staff

	business, err := uc.scheduleRepo.GetBusinessWeek(ctx, req.TenantID, unitID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get business hours: %v", err)
		return input, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}
	input.Business = business

	return input, nil
}
