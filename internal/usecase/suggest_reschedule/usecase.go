package suggest_reschedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/infra/cache/conversation"
	appointmentRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/appointment"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// UseCase use case восстановления после no-show: запись помечается,
// клиенту предлагаются ближайшие свободные слоты того же мастера,
// контекст диалога сохраняется во внешнем хранилище с TTL.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	conversations   ConversationStore
	messenger       MessagingClient
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	conversations ConversationStore,
	messenger MessagingClient,
	config Config,
	logger Logger,
) *UseCase {
	if config.SuggestionDays <= 0 {
		config.SuggestionDays = DefaultConfig().SuggestionDays
	}
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = DefaultConfig().MaxSuggestions
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		conversations:   conversations,
		messenger:       messenger,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute помечает запись no-show и предлагает клиенту перенос.
//
// Сбой отправки сообщения или сохранения контекста не откатывает
// пометку no-show: варианты все равно возвращаются вызывающей стороне,
// а проблема уходит в лог.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestReschedule: appointment=%d, tenant=%d", req.AppointmentID, req.TenantID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	// 2. Получаем запись и проверяем применимость
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("SuggestReschedule: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("SuggestReschedule: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.TenantID != req.TenantID {
		uc.logger.Warn("SuggestReschedule: appointment id=%d belongs to another tenant", req.AppointmentID)
		return nil, ErrAppointmentNotFound
	}

	// no-show имеет смысл только для подтвержденной или ожидающей записи
	if !appt.CanBeCancelled() {
		uc.logger.Warn("SuggestReschedule: appointment id=%d in status %s is not eligible", appt.ID, appt.Status)
		return nil, ErrAppointmentNotEligible
	}

	// 3. Помечаем no-show
	if err := uc.appointmentRepo.UpdateStatus(ctx, appt.ID, domain.StatusNoShow); err != nil {
		uc.logger.Error("SuggestReschedule: failed to mark no-show for id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// 4. Ищем ближайшие свободные слоты того же мастера
	suggestions, err := uc.findSuggestions(ctx, appt)
	if err != nil {
		return nil, err
	}

	if len(suggestions) == 0 {
		uc.logger.Warn("SuggestReschedule: no slots found for appointment id=%d within %d days",
			appt.ID, uc.config.SuggestionDays)
		return nil, ErrNoSuggestions
	}

	response := &Response{
		AppointmentID: appt.ID,
		Suggestions:   suggestions,
	}

	// 5. Сохраняем контекст диалога во внешнем хранилище
	conv := &conversation.Context{
		TenantID:      appt.TenantID,
		CustomerPhone: appt.CustomerPhone,
		AppointmentID: appt.ID,
		Suggestions:   make([]conversation.Slot, 0, len(suggestions)),
		CreatedAt:     uc.timeProvider.Now(),
	}
	for i, s := range suggestions {
		conv.Suggestions = append(conv.Suggestions, conversation.Slot{
			Date:  s.Date.Format(domain.DateFormat),
			Time:  s.StartTime.String(),
			Index: i + 1,
		})
	}

	if err := uc.conversations.Put(ctx, conv); err != nil {
		// Без контекста ответ клиента не сматчится, но пометка no-show
		// и список вариантов уже есть - не валим всю операцию
		uc.logger.Error("SuggestReschedule: failed to store conversation context for id=%d: %v", appt.ID, err)
		return response, nil
	}

	// 6. Отправляем клиенту сообщение с вариантами
	params := map[string]string{
		"service": appt.ServiceName,
		"count":   strconv.Itoa(len(suggestions)),
	}
	for i, s := range suggestions {
		key := fmt.Sprintf("option%d", i+1)
		params[key] = fmt.Sprintf("%s %s", s.Date.Format(domain.DateFormat), s.StartTime)
	}

	if _, err := uc.messenger.SendTemplate(ctx, appt.CustomerPhone, templateRescheduleSuggestion, params); err != nil {
		uc.logger.Error("SuggestReschedule: failed to send message for id=%d: %v", appt.ID, err)
		return response, nil
	}

	response.MessageSent = true

	uc.logger.Info("SuggestReschedule: appointment id=%d marked no-show, %d suggestions sent to %s",
		appt.ID, len(suggestions), appt.CustomerPhone)

	return response, nil
}

// findSuggestions ищет свободные слоты мастера в горизонте поиска,
// начиная со дня после пропущенной записи
func (uc *UseCase) findSuggestions(ctx context.Context, appt *domain.Appointment) ([]Suggestion, error) {
	suggestions := make([]Suggestion, 0, uc.config.MaxSuggestions)

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start := appt.Date.AddDate(0, 0, 1)
	if start.Before(today) {
		start = today
	}

	for offset := 0; offset < uc.config.SuggestionDays; offset++ {
		date := start.AddDate(0, 0, offset)

		slots, err := uc.slotsForDate(ctx, appt, date)
		if err != nil {
			// Сбой по одному дню не срывает поиск по остальным
			uc.logger.Warn("SuggestReschedule: failed to check date %s: %v", date.Format(domain.DateFormat), err)
			continue
		}

		for _, slot := range slots {
			suggestions = append(suggestions, Suggestion{Date: date, StartTime: slot})
			if len(suggestions) >= uc.config.MaxSuggestions {
				return suggestions, nil
			}
			// Не больше одного варианта в день, чтобы покрыть разные дни
			break
		}
	}

	return suggestions, nil
}

// slotsForDate возвращает свободные слоты мастера на дату
func (uc *UseCase) slotsForDate(ctx context.Context, appt *domain.Appointment, date time.Time) ([]types.TimeString, error) {
	input, err := uc.fetchDayInput(ctx, appt, date)
	if err != nil {
		return nil, err
	}

	result := scheduleEngine.Resolve(scheduleEngine.Query{
		Date:    date,
		StaffID: ptr.Ptr(appt.StaffID),
		UnitID:  ptr.Ptr(appt.UnitID),
	}, input)

	if !result.IsValid {
		return nil, nil
	}

	candidates := scheduleEngine.GenerateSlots(result.AvailableHours, appt.DurationMinutes)
	if len(candidates) == 0 {
		return nil, nil
	}

	filter := domain.TenantAppointmentsFilter{
		TenantID:  appt.TenantID,
		UnitID:    ptr.Ptr(appt.UnitID),
		StaffID:   ptr.Ptr(appt.StaffID),
		StartDate: &date,
		EndDate:   &date,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	booked := scheduleEngine.ActiveIntervals(appointments)

	free := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if !scheduleEngine.HasOverlap(slot.MinutesOfDay(), appt.DurationMinutes, booked) {
			free = append(free, slot)
		}
	}

	return free, nil
}

// fetchDayInput собирает предвыбранные источники расписаний на дату
func (uc *UseCase) fetchDayInput(ctx context.Context, appt *domain.Appointment, date time.Time) (scheduleEngine.DayInput, error) {
	var input scheduleEngine.DayInput
	unitID := ptr.Ptr(appt.UnitID)

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, appt.TenantID, unitID, date)
	if err != nil {
		return input, err
	}
	input.Blocked = blocked

	if blocked {
		return input, nil
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, appt.TenantID, unitID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		return input, err
	}
	input.Special = special

	staff, err := uc.scheduleRepo.GetStaffSchedule(ctx, appt.TenantID, appt.StaffID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return input, err
	}
	input.Staff = staff

	business, err := uc.scheduleRepo.GetBusinessWeek(ctx, appt.TenantID, unitID)
	if err != nil {
		return input, err
	}
	input.Business = business

	return input, nil
}
