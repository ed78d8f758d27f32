package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidDaySchedule возвращается при нарушении инвариантов расписания дня
	ErrInvalidDaySchedule = errors.New("invalid day schedule")
)

// Request модели

// DayScheduleRequest расписание одного дня в запросе
type DayScheduleRequest struct {
	Enabled    bool    `json:"enabled"`
	Start      *string `json:"start,omitempty"`      // "09:00"
	End        *string `json:"end,omitempty"`        // "18:00"
	BreakStart *string `json:"breakStart,omitempty"` // "13:00"
	BreakEnd   *string `json:"breakEnd,omitempty"`   // "14:00"
}

// ReplaceBusinessHoursRequest запрос на замену часов работы.
// Ключи Days - день недели 0-6 (0 = воскресенье); отсутствующий день
// означает "закрыто".
type ReplaceBusinessHoursRequest struct {
	TenantID int64                      `json:"tenantId"`
	UnitID   *int64                     `json:"unitId,omitempty"`
	Days     map[int]DayScheduleRequest `json:"days"`
}

// PutStaffScheduleRequest запрос на создание или замену графика мастера
type PutStaffScheduleRequest struct {
	TenantID      int64                           `json:"tenantId"`
	StaffID       int64                           `json:"staffId"`
	Week          [7]DayScheduleRequest           `json:"week"`
	UnitOverrides map[int64][7]DayScheduleRequest `json:"unitOverrides,omitempty"`
}

// CreateSpecialDayRequest запрос на создание особого дня
type CreateSpecialDayRequest struct {
	TenantID int64   `json:"tenantId"`
	UnitID   *int64  `json:"unitId,omitempty"`
	Date     string  `json:"date"` // "2025-12-31"
	IsOpen   bool    `json:"isOpen"`
	Start    *string `json:"start,omitempty"`
	End      *string `json:"end,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// CreateBlockedDateRequest запрос на блокировку даты
type CreateBlockedDateRequest struct {
	TenantID int64   `json:"tenantId"`
	UnitID   *int64  `json:"unitId,omitempty"`
	Date     string  `json:"date"`
	Reason   *string `json:"reason,omitempty"`
}

// UpsertBookingPolicyRequest запрос на установку политики бронирования
type UpsertBookingPolicyRequest struct {
	TenantID                int64 `json:"tenantId"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
}

// Response модели

// DayScheduleResponse расписание одного дня в ответе
type DayScheduleResponse struct {
	Enabled    bool    `json:"enabled"`
	Start      *string `json:"start,omitempty"`
	End        *string `json:"end,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// BusinessWeekResponse часы работы по дням недели
type BusinessWeekResponse struct {
	TenantID int64                       `json:"tenantId"`
	UnitID   *int64                      `json:"unitId,omitempty"`
	Days     map[int]DayScheduleResponse `json:"days"`
}

// StaffScheduleResponse график мастера
type StaffScheduleResponse struct {
	TenantID      int64                            `json:"tenantId"`
	StaffID       int64                            `json:"staffId"`
	Week          [7]DayScheduleResponse           `json:"week"`
	UnitOverrides map[int64][7]DayScheduleResponse `json:"unitOverrides,omitempty"`
}

// SpecialDayResponse особый день
type SpecialDayResponse struct {
	ID     int64   `json:"id"`
	UnitID *int64  `json:"unitId,omitempty"`
	Date   string  `json:"date"`
	IsOpen bool    `json:"isOpen"`
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// SpecialDayListResponse список особых дней
type SpecialDayListResponse struct {
	SpecialDays []SpecialDayResponse `json:"specialDays"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID     int64   `json:"id"`
	UnitID *int64  `json:"unitId,omitempty"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// BookingPolicyResponse политика бронирования
type BookingPolicyResponse struct {
	TenantID                int64 `json:"tenantId"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
}

// Методы конвертации

// ToDomainDaySchedule конвертирует DTO дня в каноническое расписание.
// Некорректный формат времени и нарушенные инварианты - ошибка, а не
// тихое "закрыто": админский вход должен падать громко.
func (r DayScheduleRequest) ToDomainDaySchedule() (domain.DaySchedule, error) {
	if !r.Enabled {
		return domain.DaySchedule{Enabled: false}, nil
	}

	if r.Start == nil || r.End == nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: start and end are required for enabled day", ErrInvalidDaySchedule)
	}

	day := domain.DaySchedule{Enabled: true}

	var err error
	if day.Start, err = parseTime(*r.Start); err != nil {
		return domain.DaySchedule{}, err
	}
	if day.End, err = parseTime(*r.End); err != nil {
		return domain.DaySchedule{}, err
	}

	if r.BreakStart != nil || r.BreakEnd != nil {
		if r.BreakStart == nil || r.BreakEnd == nil {
			return domain.DaySchedule{}, fmt.Errorf("%w: break requires both breakStart and breakEnd", ErrInvalidDaySchedule)
		}
		breakStart, err := parseTime(*r.BreakStart)
		if err != nil {
			return domain.DaySchedule{}, err
		}
		breakEnd, err := parseTime(*r.BreakEnd)
		if err != nil {
			return domain.DaySchedule{}, err
		}
		day.BreakStart = &breakStart
		day.BreakEnd = &breakEnd
	}

	if !day.IsValid() {
		return domain.DaySchedule{}, fmt.Errorf("%w: start < end and start <= breakStart < breakEnd <= end required", ErrInvalidDaySchedule)
	}

	return day, nil
}

// FromDomainDaySchedule конвертирует каноническое расписание дня в DTO
func FromDomainDaySchedule(day domain.DaySchedule) DayScheduleResponse {
	if !day.Enabled {
		return DayScheduleResponse{Enabled: false}
	}

	resp := DayScheduleResponse{
		Enabled: true,
		Start:   timeString(day.Start),
		End:     timeString(day.End),
	}
	if day.BreakStart != nil {
		resp.BreakStart = timeString(*day.BreakStart)
	}
	if day.BreakEnd != nil {
		resp.BreakEnd = timeString(*day.BreakEnd)
	}
	return resp
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return date, nil
}

func parseTime(value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return t, nil
}

func timeString(t types.TimeString) *string {
	s := t.String()
	return &s
}
