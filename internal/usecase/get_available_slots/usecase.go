package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
)

// UseCase use case получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directory:       directory,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет получение доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу: длительность определяет размер проверяемого интервала
	service, err := uc.directory.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что мастер выполняет услугу
	if err := validateStaffPerformsService(service, req.StaffID); err != nil {
		uc.logger.Warn("GetAvailableSlots: staff=%v does not perform service=%d", req.StaffID, req.ServiceID)
		return nil, err
	}

	// 5. Получаем политику бронирования (дефолт при отсутствии)
	policy, err := uc.scheduleRepo.GetBookingPolicy(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get booking policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(req.TenantID)
	}

	// 6. Валидация даты против политики
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Разрешаем расписание на дату
	input, err := uc.fetchDayInput(ctx, req)
	if err != nil {
		return nil, err
	}

	result := scheduleEngine.Resolve(scheduleEngine.Query{
		Date:    req.Date,
		StaffID: req.StaffID,
		UnitID:  req.UnitID,
	}, input)

	response := &Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
		Hours:           result.AvailableHours,
	}

	// Закрытый день - пустой список с причиной, это не ошибка
	if !result.IsValid {
		uc.logger.Info("GetAvailableSlots: day closed for tenant=%d, date=%s, reason=%q",
			req.TenantID, req.Date.Format(domain.DateFormat), result.Reason)
		response.Reason = result.Reason
		return response, nil
	}

	// 8. Генерируем слоты по фиксированной сетке
	candidates := scheduleEngine.GenerateSlots(result.AvailableHours, service.DurationMinutes)

	// 9. Получаем активные записи на эту дату
	filter := domain.TenantAppointmentsFilter{
		TenantID:  req.TenantID,
		UnitID:    req.UnitID,
		StaffID:   req.StaffID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked := scheduleEngine.ActiveIntervals(appointments)

	// 10. Отбрасываем занятые слоты и слоты, нарушающие минимальный интервал
	minStartMinutes := minStartForDate(req.Date, now, policy.MinBookingNoticeMinutes)

	for _, start := range candidates {
		startMinutes := start.MinutesOfDay()

		if startMinutes < minStartMinutes {
			continue
		}

		if scheduleEngine.HasOverlap(startMinutes, service.DurationMinutes, booked) {
			continue
		}

		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			continue
		}

		response.Slots = append(response.Slots, Slot{StartTime: start, EndTime: end})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%d, service=%d, date=%s",
		len(response.Slots), req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return response, nil
}

// fetchDayInput собирает предвыбранные источники расписаний на дату запроса
func (uc *UseCase) fetchDayInput(ctx context.Context, req *Request) (scheduleEngine.DayInput, error) {
	var input scheduleEngine.DayInput

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.TenantID, req.UnitID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return input, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	input.Blocked = blocked

	if blocked {
		return input, nil
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, req.TenantID, req.UnitID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get special day: %v", err)
		return input, fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
	}
	input.Special = special

	if req.StaffID != nil {
		staff, err := uc.scheduleRepo.GetStaffSchedule(ctx, req.TenantID, *req.StaffID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get staff schedule: %v", err)
			return input, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
		}
		input.Staff = staff
	}

	business, err := uc.scheduleRepo.GetBusinessWeek(ctx, req.TenantID, req.UnitID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get business hours: %v", err)
		return input, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}
	input.Business = business

	return input, nil
}

// minStartForDate возвращает минимально допустимые минуты начала слота.
// Для будущих дат ограничения нет, для сегодняшней даты слот должен
// начинаться не раньше now + minNoticeMinutes.
func minStartForDate(date, now time.Time, minNoticeMinutes int) int {
	sameDay := date.Year() == now.Year() &&
		date.Month() == now.Month() &&
		date.Day() == now.Day()
	if !sameDay {
		return 0
	}

	return now.Hour()*60 + now.Minute() + minNoticeMinutes
}
