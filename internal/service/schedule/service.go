package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	scheduleEngine "github.com/barbersmart/BS-AvailabilityService/internal/schedule"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
)

// Service сервис управления источниками расписаний:
// часы работы, графики мастеров, особые дни, заблокированные даты
// и политика бронирования
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetBusinessWeek возвращает часы работы тенанта (или точки) по дням недели
func (s *Service) GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) (*models.BusinessWeekResponse, error) {
	s.logger.Info("GetBusinessWeek: tenant=%d, unit=%v", tenantID, unitID)

	rows, err := s.scheduleRepo.GetBusinessWeek(ctx, tenantID, unitID)
	if err != nil {
		s.logger.Error("GetBusinessWeek: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetBusinessWeek - repository error: %v", ErrInternal, err)
	}

	response := &models.BusinessWeekResponse{
		TenantID: tenantID,
		UnitID:   unitID,
		Days:     make(map[int]models.DayScheduleResponse, len(rows)),
	}

	for _, row := range rows {
		// Строка точки приоритетнее общей строки тенанта на тот же день
		if _, exists := response.Days[row.DayOfWeek]; exists && row.UnitID == nil {
			continue
		}
		response.Days[row.DayOfWeek] = models.FromDomainDaySchedule(scheduleEngine.NormalizeBusinessHours(row))
	}

	return response, nil
}

// ReplaceBusinessHours заменяет часы работы целиком.
// Отсутствующий в запросе день недели означает "закрыто".
func (s *Service) ReplaceBusinessHours(ctx context.Context, req *models.ReplaceBusinessHoursRequest) error {
	s.logger.Info("ReplaceBusinessHours: tenant=%d, unit=%v, days=%d", req.TenantID, req.UnitID, len(req.Days))

	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	rows := make([]*domain.BusinessHours, 0, len(req.Days))

	for dayOfWeek, dayReq := range req.Days {
		if dayOfWeek < 0 || dayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek %d out of range 0..6", ErrInvalidInput, dayOfWeek)
		}

		day, err := dayReq.ToDomainDaySchedule()
		if err != nil {
			s.logger.Warn("ReplaceBusinessHours: invalid day %d for tenant=%d: %v", dayOfWeek, req.TenantID, err)
			return fmt.Errorf("%w: day %d: %v", ErrInvalidInput, dayOfWeek, err)
		}

		row := &domain.BusinessHours{
			TenantID:  req.TenantID,
			UnitID:    req.UnitID,
			DayOfWeek: dayOfWeek,
			IsOpen:    day.Enabled,
		}
		if day.Enabled {
			start, end := day.Start, day.End
			row.OpenTime = &start
			row.CloseTime = &end
			row.BreakStart = day.BreakStart
			row.BreakEnd = day.BreakEnd
		}

		rows = append(rows, row)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceBusinessHours(txCtx, req.TenantID, req.UnitID, rows)
	})
	if err != nil {
		s.logger.Error("ReplaceBusinessHours: repository error for tenant=%d: %v", req.TenantID, err)
		return fmt.Errorf("%w: ReplaceBusinessHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceBusinessHours: replaced %d rows for tenant=%d", len(rows), req.TenantID)
	return nil
}

// GetStaffSchedule возвращает график мастера
func (s *Service) GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*models.StaffScheduleResponse, error) {
	s.logger.Info("GetStaffSchedule: tenant=%d, staff=%d", tenantID, staffID)

	schedule, err := s.scheduleRepo.GetStaffSchedule(ctx, tenantID, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetStaffSchedule: schedule not found for staff=%d", staffID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetStaffSchedule: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffSchedule - repository error: %v", ErrInternal, err)
	}

	response := &models.StaffScheduleResponse{
		TenantID: schedule.TenantID,
		StaffID:  schedule.StaffID,
	}
	for i, day := range schedule.Week {
		response.Week[i] = models.FromDomainDaySchedule(day)
	}
	if len(schedule.UnitOverrides) > 0 {
		response.UnitOverrides = make(map[int64][7]models.DayScheduleResponse, len(schedule.UnitOverrides))
		for unitID, week := range schedule.UnitOverrides {
			var dto [7]models.DayScheduleResponse
			for i, day := range week {
				dto[i] = models.FromDomainDaySchedule(day)
			}
			response.UnitOverrides[unitID] = dto
		}
	}

	return response, nil
}

// PutStaffSchedule создает или заменяет график мастера целиком
func (s *Service) PutStaffSchedule(ctx context.Context, req *models.PutStaffScheduleRequest) error {
	s.logger.Info("PutStaffSchedule: tenant=%d, staff=%d", req.TenantID, req.StaffID)

	if req.TenantID <= 0 || req.StaffID <= 0 {
		return fmt.Errorf("%w: tenantID and staffID must be positive", ErrInvalidInput)
	}

	schedule := &domain.StaffSchedule{
		TenantID: req.TenantID,
		StaffID:  req.StaffID,
	}

	week, err := toDomainWeek(req.Week)
	if err != nil {
		s.logger.Warn("PutStaffSchedule: invalid week for staff=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	schedule.Week = week

	if len(req.UnitOverrides) > 0 {
		schedule.UnitOverrides = make(map[int64]domain.WeekSchedule, len(req.UnitOverrides))
		for unitID, weekReq := range req.UnitOverrides {
			override, err := toDomainWeek(weekReq)
			if err != nil {
				s.logger.Warn("PutStaffSchedule: invalid override for unit=%d: %v", unitID, err)
				return fmt.Errorf("%w: unit %d: %v", ErrInvalidInput, unitID, err)
			}
			schedule.UnitOverrides[unitID] = override
		}
	}

	// Get-then-update: график мастера пишет только админка, гонка маловероятна
	_, err = s.scheduleRepo.GetStaffSchedule(ctx, req.TenantID, req.StaffID)
	switch {
	case err == nil:
		err = s.scheduleRepo.UpdateStaffSchedule(ctx, schedule)
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		_, err = s.scheduleRepo.CreateStaffSchedule(ctx, schedule)
	}
	if err != nil {
		s.logger.Error("PutStaffSchedule: repository error for staff=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: PutStaffSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PutStaffSchedule: schedule saved for staff=%d", req.StaffID)
	return nil
}

// ListSpecialDays возвращает особые дни тенанта в диапазоне дат
func (s *Service) ListSpecialDays(ctx context.Context, tenantID int64, from, to time.Time) (*models.SpecialDayListResponse, error) {
	s.logger.Info("ListSpecialDays: tenant=%d, from=%s, to=%s",
		tenantID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	days, err := s.scheduleRepo.ListSpecialDays(ctx, tenantID, from, to)
	if err != nil {
		s.logger.Error("ListSpecialDays: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListSpecialDays - repository error: %v", ErrInternal, err)
	}

	response := &models.SpecialDayListResponse{
		SpecialDays: make([]models.SpecialDayResponse, 0, len(days)),
	}
	for _, day := range days {
		response.SpecialDays = append(response.SpecialDays, specialDayToDTO(day))
	}

	return response, nil
}

// CreateSpecialDay создает особый день
func (s *Service) CreateSpecialDay(ctx context.Context, req *models.CreateSpecialDayRequest) (*models.SpecialDayResponse, error) {
	s.logger.Info("CreateSpecialDay: tenant=%d, date=%s, open=%t", req.TenantID, req.Date, req.IsOpen)

	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day := &domain.SpecialDay{
		TenantID: req.TenantID,
		UnitID:   req.UnitID,
		Date:     date,
		IsOpen:   req.IsOpen,
		Note:     req.Note,
	}

	if req.IsOpen {
		// Открытый особый день валидируется как обычное расписание дня
		dayReq := models.DayScheduleRequest{Enabled: true, Start: req.Start, End: req.End}
		schedule, err := dayReq.ToDomainDaySchedule()
		if err != nil {
			s.logger.Warn("CreateSpecialDay: invalid hours for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		start, end := schedule.Start, schedule.End
		day.OpenTime = &start
		day.CloseTime = &end
	}

	created, err := s.scheduleRepo.CreateSpecialDay(ctx, day)
	if err != nil {
		s.logger.Error("CreateSpecialDay: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateSpecialDay - repository error: %v", ErrInternal, err)
	}

	dto := specialDayToDTO(created)
	return &dto, nil
}

// DeleteSpecialDay удаляет особый день
func (s *Service) DeleteSpecialDay(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteSpecialDay: tenant=%d, id=%d", tenantID, id)

	if err := s.scheduleRepo.DeleteSpecialDay(ctx, tenantID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
			s.logger.Warn("DeleteSpecialDay: special day id=%d not found", id)
			return ErrSpecialDayNotFound
		}
		s.logger.Error("DeleteSpecialDay: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSpecialDay - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListBlockedDates возвращает заблокированные даты тенанта в диапазоне
func (s *Service) ListBlockedDates(ctx context.Context, tenantID int64, from, to time.Time) (*models.BlockedDateListResponse, error) {
	s.logger.Info("ListBlockedDates: tenant=%d, from=%s, to=%s",
		tenantID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	dates, err := s.scheduleRepo.ListBlockedDates(ctx, tenantID, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	response := &models.BlockedDateListResponse{
		BlockedDates: make([]models.BlockedDateResponse, 0, len(dates)),
	}
	for _, blocked := range dates {
		response.BlockedDates = append(response.BlockedDates, models.BlockedDateResponse{
			ID:     blocked.ID,
			UnitID: blocked.UnitID,
			Date:   blocked.Date.Format(domain.DateFormat),
			Reason: blocked.Reason,
		})
	}

	return response, nil
}

// CreateBlockedDate блокирует дату
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: tenant=%d, date=%s", req.TenantID, req.Date)

	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateBlockedDate(ctx, &domain.BlockedDate{
		TenantID: req.TenantID,
		UnitID:   req.UnitID,
		Date:     date,
		Reason:   req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	return &models.BlockedDateResponse{
		ID:     created.ID,
		UnitID: created.UnitID,
		Date:   created.Date.Format(domain.DateFormat),
		Reason: created.Reason,
	}, nil
}

// DeleteBlockedDate снимает блокировку даты
func (s *Service) DeleteBlockedDate(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteBlockedDate: tenant=%d, id=%d", tenantID, id)

	if err := s.scheduleRepo.DeleteBlockedDate(ctx, tenantID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%d not found", id)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetBookingPolicy возвращает политику бронирования тенанта.
// При отсутствии настроенной политики возвращаются дефолтные значения.
func (s *Service) GetBookingPolicy(ctx context.Context, tenantID int64) (*models.BookingPolicyResponse, error) {
	s.logger.Info("GetBookingPolicy: tenant=%d", tenantID)

	policy, err := s.scheduleRepo.GetBookingPolicy(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			s.logger.Error("GetBookingPolicy: repository error for tenant=%d: %v", tenantID, err)
			return nil, fmt.Errorf("%w: GetBookingPolicy - repository error: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(tenantID)
	}

	return &models.BookingPolicyResponse{
		TenantID:                tenantID,
		AdvanceBookingDays:      policy.AdvanceBookingDays,
		MinBookingNoticeMinutes: policy.MinBookingNoticeMinutes,
	}, nil
}

// UpsertBookingPolicy устанавливает политику бронирования тенанта
func (s *Service) UpsertBookingPolicy(ctx context.Context, req *models.UpsertBookingPolicyRequest) (*models.BookingPolicyResponse, error) {
	s.logger.Info("UpsertBookingPolicy: tenant=%d, advanceDays=%d, noticeMinutes=%d",
		req.TenantID, req.AdvanceBookingDays, req.MinBookingNoticeMinutes)

	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return nil, fmt.Errorf("%w: advanceBookingDays must be %d..%d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinBookingNoticeMinutes < domain.MinNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return nil, fmt.Errorf("%w: minBookingNoticeMinutes must be %d..%d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	saved, err := s.scheduleRepo.UpsertBookingPolicy(ctx, &domain.BookingPolicy{
		TenantID:                req.TenantID,
		AdvanceBookingDays:      req.AdvanceBookingDays,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
	})
	if err != nil {
		s.logger.Error("UpsertBookingPolicy: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpsertBookingPolicy - repository error: %v", ErrInternal, err)
	}

	return &models.BookingPolicyResponse{
		TenantID:                saved.TenantID,
		AdvanceBookingDays:      saved.AdvanceBookingDays,
		MinBookingNoticeMinutes: saved.MinBookingNoticeMinutes,
	}, nil
}

// toDomainWeek конвертирует неделю из DTO с валидацией каждого дня
func toDomainWeek(week [7]models.DayScheduleRequest) (domain.WeekSchedule, error) {
	var result domain.WeekSchedule
	for i, dayReq := range week {
		day, err := dayReq.ToDomainDaySchedule()
		if err != nil {
			return result, fmt.Errorf("day %d: %v", i, err)
		}
		result[i] = day
	}
	return result, nil
}

func specialDayToDTO(day *domain.SpecialDay) models.SpecialDayResponse {
	dto := models.SpecialDayResponse{
		ID:     day.ID,
		UnitID: day.UnitID,
		Date:   day.Date.Format(domain.DateFormat),
		IsOpen: day.IsOpen,
		Note:   day.Note,
	}
	if day.OpenTime != nil {
		start := day.OpenTime.String()
		dto.Start = &start
	}
	if day.CloseTime != nil {
		end := day.CloseTime.String()
		dto.End = &end
	}
	return dto
}
