package schedule

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Query запрос на разрешение расписания для даты.
// Time, StaffID и UnitID опциональны: без Time выполняется только проверка
// уровня дня, без StaffID график мастера не участвует в разрешении.
type Query struct {
	Date    time.Time
	Time    *types.TimeString
	StaffID *int64
	UnitID  *int64
}

// DayInput предвыбранные источники расписаний на дату запроса.
// Слой данных собирает их одним набором запросов, резолвер остается чистым.
type DayInput struct {
	Blocked  bool                    // дата в списке заблокированных
	Special  *domain.SpecialDay      // особый день на эту дату, если есть
	Staff    *domain.StaffSchedule   // график мастера, если запрошен StaffID
	Business []*domain.BusinessHours // строки часов работы на день недели
}

// Resolve применяет порядок приоритетов источников расписаний и возвращает
// эффективный результат проверки:
//
//  1. Заблокированная дата - отказ, перекрывает всё
//  2. Особый день - закрытый даёт отказ; открытый даёт рабочее окно,
//     график мастера и часы работы при этом игнорируются
//  3. График мастера (только при заданном StaffID)
//  4. Часы работы (при отсутствии строк - дефолт: пн-сб 09:00-18:00)
//  5. Проверка времени в рабочем окне [start, end) и перерыве [breakStart, breakEnd)
//
// Более специфичное и более свежее правило всегда побеждает общее:
// разовое закрытие на праздник перекрывает постоянные недельные часы.
func Resolve(q Query, in DayInput) domain.ValidationResult {
	// 1. Заблокированная дата
	if in.Blocked {
		return domain.Invalid(domain.ReasonDateBlocked)
	}

	// 2. Особый день
	if in.Special != nil {
		day := NormalizeSpecialDay(in.Special)
		if !day.Enabled {
			return domain.Invalid(domain.ReasonClosedSpecial)
		}
		return checkTime(q.Time, day)
	}

	// 3. График мастера
	if q.StaffID != nil && in.Staff != nil {
		day := NormalizeStaffDay(in.Staff, q.Date.Weekday(), q.UnitID)
		if !day.Enabled {
			return domain.Invalid(domain.ReasonStaffDayOff)
		}
		return checkTime(q.Time, day)
	}

	// 4. Часы работы
	day := businessDay(in.Business, q.Date.Weekday(), q.UnitID)
	if !day.Enabled {
		return domain.Invalid(domain.ReasonOutsideHours)
	}

	// 5. Проверка времени
	return checkTime(q.Time, day)
}

// businessDay выбирает строку часов работы на день недели.
// Строка для конкретной точки приоритетнее общей строки тенанта.
// При полном отсутствии строк применяется дефолтное расписание.
func businessDay(rows []*domain.BusinessHours, weekday time.Weekday, unitID *int64) domain.DaySchedule {
	var tenantRow *domain.BusinessHours

	for _, row := range rows {
		if row == nil || row.DayOfWeek != int(weekday) {
			continue
		}
		if row.UnitID != nil {
			if unitID != nil && *row.UnitID == *unitID {
				return NormalizeBusinessHours(row)
			}
			continue
		}
		tenantRow = row
	}

	if tenantRow != nil {
		return NormalizeBusinessHours(tenantRow)
	}

	if len(rows) > 0 {
		// Часы работы настроены, но на этот день недели строки нет - закрыто
		return domain.DaySchedule{Enabled: false}
	}

	return domain.DefaultDaySchedule(weekday)
}

// checkTime проверяет попадание времени в эффективное рабочее окно.
// Без времени возвращается успешный результат уровня дня.
func checkTime(t *types.TimeString, day domain.DaySchedule) domain.ValidationResult {
	hours := domain.HoursFromSchedule(day)

	if t == nil {
		return domain.Valid(hours)
	}

	// Рабочее окно полуоткрытое: [start, end)
	if t.IsBefore(day.Start) || !t.IsBefore(day.End) {
		return domain.InvalidWithHours(domain.ReasonOutsideHours, hours)
	}

	// Перерыв тоже полуоткрытый: [breakStart, breakEnd)
	if day.HasBreak() && !t.IsBefore(*day.BreakStart) && t.IsBefore(*day.BreakEnd) {
		return domain.InvalidWithHours(domain.ReasonInsideBreak, hours)
	}

	return domain.Valid(hours)
}
