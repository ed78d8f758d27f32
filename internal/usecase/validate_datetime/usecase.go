package validate_datetime

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
)

// UseCase use case проверки даты и времени на доступность для записи
type UseCase struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку даты и времени.
// Отказ политики (закрыто, перерыв, выходной мастера) возвращается
// как Response с IsValid=false; ошибкой являются только мусорный вход
// и сбои инфраструктуры.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateDatetime: tenant=%d, date=%s", req.TenantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateDatetime: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем политику бронирования (дефолт при отсутствии)
	policy, err := uc.scheduleRepo.GetBookingPolicy(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			uc.logger.Error("ValidateDatetime: failed to get booking policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(req.TenantID)
	}

	// 4. Валидация даты против политики
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("ValidateDatetime: date validation failed: %v", err)
		return nil, err
	}

	// 5. Собираем источники расписаний на дату
	input, err := uc.fetchDayInput(ctx, req)
	if err != nil {
		return nil, err
	}

	// 6. Разрешаем правила по приоритетам
	result := scheduleEngine.Resolve(scheduleEngine.Query{
		Date:    req.Date,
		Time:    req.Time,
		StaffID: req.StaffID,
		UnitID:  req.UnitID,
	}, input)

	// 7. Минимальный интервал до начала записи
	if result.IsValid && req.Time != nil {
		if err := validateNotice(req.Date, req.Time.MinutesOfDay(), now, policy.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("ValidateDatetime: notice validation failed: %v", err)
			return nil, err
		}
	}

	uc.logger.Info("ValidateDatetime: tenant=%d, date=%s, valid=%t, reason=%q",
		req.TenantID, req.Date.Format(domain.DateFormat), result.IsValid, result.Reason)

	return &Response{Result: result}, nil
}

// fetchDayInput собирает предвыбранные источники расписаний на дату запроса
func (uc *UseCase) fetchDayInput(ctx context.Context, req *Request) (scheduleEngine.DayInput, error) {
	var input scheduleEngine.DayInput

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.TenantID, req.UnitID, req.Date)
	if err != nil {
		uc.logger.Error("ValidateDatetime: failed to check blocked date: %v", err)
		return input, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	input.Blocked = blocked

	// Заблокированная дата перекрывает всё - дальше можно не ходить
	if blocked {
		return input, nil
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, req.TenantID, req.UnitID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		uc.logger.Error("ValidateDatetime: failed to get special day: %v", err)
		return input, fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
	}
	input.Special = special

	if req.StaffID != nil {
		staff, err := uc.scheduleRepo.GetStaffSchedule(ctx, req.TenantID, *req.StaffID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("ValidateDatetime: failed to get staff schedule: %v", err)
			return input, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
		}
		input.Staff = staff
	}

	// Неделя целиком: пустой список означает "часы не настроены" (дефолт),
	// а настроенная неделя без строки на этот день - "закрыто"
	business, err := uc.scheduleRepo.GetBusinessWeek(ctx, req.TenantID, req.UnitID)
	if err != nil {
		uc.logger.Error("ValidateDatetime: failed to get business hours: %v", err)
		return input, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}
	input.Business = business

	return input, nil
}
