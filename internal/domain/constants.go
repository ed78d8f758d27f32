package domain

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Политика слотов
const (
	// SlotStepMinutes фиксированный шаг сетки слотов.
	// Время начала слота всегда кратно 30 минутам независимо от длительности услуги.
	SlotStepMinutes = 30

	DefaultAdvanceBookingDays      = 0  // 0 = без ограничения
	DefaultMinBookingNoticeMinutes = 60 // 1 час
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365
	MinNoticeMinutes          = 0
	MaxNoticeMinutes          = 10080 // неделя
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Дефолтное рабочее окно, применяется при полном отсутствии часов работы:
// открыто понедельник-суббота 09:00-18:00, воскресенье выходной
const (
	defaultOpenMinutes  = 9 * 60
	defaultCloseMinutes = 18 * 60
)

// DefaultDaySchedule возвращает дефолтное расписание на день недели
func DefaultDaySchedule(weekday time.Weekday) DaySchedule {
	if weekday == time.Sunday {
		return DaySchedule{Enabled: false}
	}

	open, _ := types.NewTimeStringFromMinutes(defaultOpenMinutes)
	close, _ := types.NewTimeStringFromMinutes(defaultCloseMinutes)

	return DaySchedule{
		Enabled: true,
		Start:   open,
		End:     close,
	}
}
