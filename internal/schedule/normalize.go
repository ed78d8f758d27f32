package schedule

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
)

// Нормализация приводит разнородные источники расписаний к канонической
// форме domain.DaySchedule. Ошибок здесь нет намеренно: отсутствующие или
// некорректные данные нормализуются в безопасное "закрыто", чтобы система
// всегда давала однозначный ответ для интерфейса бронирования.

// NormalizeBusinessHours приводит строку часов работы к расписанию дня
func NormalizeBusinessHours(row *domain.BusinessHours) domain.DaySchedule {
	if row == nil || !row.IsOpen || row.OpenTime == nil || row.CloseTime == nil {
		return domain.DaySchedule{Enabled: false}
	}

	day := domain.DaySchedule{
		Enabled: true,
		Start:   *row.OpenTime,
		End:     *row.CloseTime,
	}

	// Перерыв учитывается только при обоих заданных концах
	if row.BreakStart != nil && row.BreakEnd != nil {
		day.BreakStart = row.BreakStart
		day.BreakEnd = row.BreakEnd
	}

	return ensureValid(day)
}

// NormalizeStaffDay возвращает расписание мастера на день недели
// с учетом переопределения для точки. Если графика мастера нет вовсе -
// безопасное "закрыто".
func NormalizeStaffDay(s *domain.StaffSchedule, weekday time.Weekday, unitID *int64) domain.DaySchedule {
	if s == nil {
		return domain.DaySchedule{Enabled: false}
	}
	return ensureValid(s.WeekFor(unitID).Day(weekday))
}

// NormalizeSpecialDay приводит особый день к расписанию дня.
// Особый день с isOpen=true, но без заданных часов нормализуется в "закрыто".
func NormalizeSpecialDay(sd *domain.SpecialDay) domain.DaySchedule {
	if sd == nil || !sd.IsOpen || sd.OpenTime == nil || sd.CloseTime == nil {
		return domain.DaySchedule{Enabled: false}
	}

	day := domain.DaySchedule{
		Enabled: true,
		Start:   *sd.OpenTime,
		End:     *sd.CloseTime,
	}

	if sd.BreakStart != nil && sd.BreakEnd != nil {
		day.BreakStart = sd.BreakStart
		day.BreakEnd = sd.BreakEnd
	}

	return ensureValid(day)
}

// ensureValid проверяет инварианты расписания.
// Нарушенный инвариант (start >= end, перерыв вне окна) - это испорченные
// данные, из которых нельзя генерировать слоты: возвращаем "закрыто".
func ensureValid(day domain.DaySchedule) domain.DaySchedule {
	if !day.IsValid() {
		return domain.DaySchedule{Enabled: false}
	}
	return day
}
