package preview_recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
	"github.com/barbersmart/BS-AvailabilityService/internal/recurrence"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// UseCase use case предпросмотра серии повторяющихся записей.
// Серия генерируется правилом повторения, каждая дата проверяется
// на доступность партиями ограниченного размера.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	prober          *recurrence.Prober
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
		prober:          recurrence.NewProber(),
		logger:          logger,
	}
}

// Execute выполняет предпросмотр серии.
//
// onProgress (опционально) получает копию накопленных результатов после
// каждой партии проверок: вызывающая сторона может отдавать прогресс
// клиенту, не дожидаясь всей серии. Упавшая проверка одной даты дает
// "check failed" по этой дате и не прерывает остальные.
func (uc *UseCase) Execute(ctx context.Context, req *Request, onProgress ProgressFunc) (*Response, error) {
	uc.logger.Info("PreviewRecurring: tenant=%d, service=%d, rule=%s, count=%d, anchor=%s",
		req.TenantID, req.ServiceID, req.Rule, req.Count, req.AnchorDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PreviewRecurring: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу: длительность нужна для проверки пересечений
	service, err := uc.directory.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("PreviewRecurring: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("PreviewRecurring: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if req.StaffID != nil && !service.PerformedBy(*req.StaffID) {
		uc.logger.Warn("PreviewRecurring: staff=%d does not perform service=%d", *req.StaffID, req.ServiceID)
		return nil, ErrStaffNotEligible
	}

	// 3. Генерируем серию дат
	dates, err := recurrence.Expand(req.AnchorDate, domain.RecurrenceConfig{
		Rule:               req.Rule,
		Count:              req.Count,
		CustomIntervalDays: req.CustomIntervalDays,
	})
	if err != nil {
		uc.logger.Warn("PreviewRecurring: recurrence expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	// 4. Проверяем все даты партиями
	check := uc.buildCheck(service.DurationMinutes, req)
	results := uc.prober.ProbeAll(ctx, dates, req.Time, check, onProgress)

	// 5. Собираем ответ в порядке серии
	response := &Response{
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Dates:     make([]DateResult, 0, len(dates)),
	}

	for _, gd := range dates {
		result, ok := results[gd.Key]
		if !ok {
			// Отмена контекста могла прервать серию до этой даты
			result = recurrence.CheckResult{Available: false, Reason: domain.ReasonCheckFailed}
		}

		if result.Available {
			response.AvailableCount++
		}

		response.Dates = append(response.Dates, DateResult{
			Date:      gd.Date,
			Index:     gd.Index,
			Available: result.Available,
			Reason:    result.Reason,
		})
	}

	uc.logger.Info("PreviewRecurring: tenant=%d, service=%d: %d of %d dates available",
		req.TenantID, req.ServiceID, response.AvailableCount, len(dates))

	return response, nil
}

// buildCheck строит проверку доступности одной даты серии:
// разрешение расписания плюс пересечения с существующими записями
func (uc *UseCase) buildCheck(durationMinutes int, req *Request) recurrence.CheckFunc {
	return func(ctx context.Context, date time.Time, t types.TimeString) (recurrence.CheckResult, error) {
		input, err := uc.fetchDayInput(ctx, req, date)
		if err != nil {
			return recurrence.CheckResult{}, err
		}

		result := scheduleEngine.Resolve(scheduleEngine.Query{
			Date:    date,
			Time:    &t,
			StaffID: req.StaffID,
			UnitID:  req.UnitID,
		}, input)

		if !result.IsValid {
			return recurrence.CheckResult{Available: false, Reason: result.Reason}, nil
		}

		// Услуга должна помещаться до закрытия
		startMinutes := t.MinutesOfDay()
		if result.AvailableHours != nil && startMinutes+durationMinutes > result.AvailableHours.End.MinutesOfDay() {
			return recurrence.CheckResult{Available: false, Reason: domain.ReasonOutsideHours}, nil
		}

		filter := domain.TenantAppointmentsFilter{
			TenantID:  req.TenantID,
			UnitID:    req.UnitID,
			StaffID:   req.StaffID,
			StartDate: &date,
			EndDate:   &date,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
		if err != nil {
			return recurrence.CheckResult{}, err
		}

		booked := scheduleEngine.ActiveIntervals(appointments)
		if scheduleEngine.HasOverlap(startMinutes, durationMinutes, booked) {
			return recurrence.CheckResult{Available: false, Reason: domain.ReasonSlotTaken}, nil
		}

		return recurrence.CheckResult{Available: true}, nil
	}
}

// fetchDayInput собирает предвыбранные источники расписаний на дату серии
func (uc *UseCase) fetchDayInput(ctx context.Context, req *Request, date time.Time) (scheduleEngine.DayInput, error) {
	var input scheduleEngine.DayInput

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.TenantID, req.UnitID, date)
	if err != nil {
		return input, err
	}
	input.Blocked = blocked

	if blocked {
		return input, nil
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, req.TenantID, req.UnitID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		return input, err
	}
	input.Special = special

	if req.StaffID != nil {
		staff, err := uc.scheduleRepo.GetStaffSchedule(ctx, req.TenantID, *req.StaffID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return input, err
		}
		input.Staff = staff
	}

	business, err := uc.scheduleRepo.GetBusinessWeek(ctx, req.TenantID, req.UnitID)
	if err != nil {
		return input, err
	}
	input.Business = business

	return input, nil
}
