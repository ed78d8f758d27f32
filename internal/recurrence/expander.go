package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidRule возвращается при неизвестном правиле повторения
	ErrInvalidRule = errors.New("recurrence: invalid rule")

	// ErrInvalidCount возвращается при количестве повторений вне допустимых границ
	ErrInvalidCount = errors.New("recurrence: invalid count")

	// ErrInvalidInterval возвращается при некорректном пользовательском интервале
	ErrInvalidInterval = errors.New("recurrence: invalid custom interval")
)

// Expand генерирует серию дат по правилу повторения.
//
// Длина результата ровно cfg.Count, элемент с индексом 0 - якорная дата.
// Даты строго возрастают и идут с равным шагом, кроме monthly, где шаг
// зависит от длины календарного месяца.
//
// Для monthly день месяца берется от якорной даты и при переполнении
// зажимается до последнего дня целевого месяца (31 января -> 28/29 февраля);
// каждый шаг считается от якоря, а не от предыдущей зажатой даты, поэтому
// в длинных месяцах серия возвращается на исходный день.
func Expand(anchor time.Time, cfg domain.RecurrenceConfig) ([]domain.GeneratedDate, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// Обнуляем время, серия оперирует только датами
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())

	dates := make([]domain.GeneratedDate, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		var date time.Time

		switch cfg.Rule {
		case domain.RecurrenceWeekly:
			date = anchor.AddDate(0, 0, 7*i)
		case domain.RecurrenceBiweekly:
			date = anchor.AddDate(0, 0, 14*i)
		case domain.RecurrenceMonthly:
			date = addMonthsClamped(anchor, i)
		case domain.RecurrenceCustom:
			date = anchor.AddDate(0, 0, *cfg.CustomIntervalDays*i)
		}

		dates = append(dates, domain.GeneratedDate{
			Date:  date,
			Index: i,
			Key:   date.Format(domain.DateFormat),
		})
	}

	return dates, nil
}

func validateConfig(cfg domain.RecurrenceConfig) error {
	if !cfg.Rule.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRule, cfg.Rule)
	}

	if cfg.Count < domain.MinRecurrenceCount || cfg.Count > domain.MaxRecurrenceCount {
		return fmt.Errorf("%w: %d (allowed %d..%d)",
			ErrInvalidCount, cfg.Count, domain.MinRecurrenceCount, domain.MaxRecurrenceCount)
	}

	if cfg.Rule == domain.RecurrenceCustom {
		if cfg.CustomIntervalDays == nil {
			return fmt.Errorf("%w: customIntervalDays is required for custom rule", ErrInvalidInterval)
		}
		if *cfg.CustomIntervalDays < domain.MinCustomIntervalDays || *cfg.CustomIntervalDays > domain.MaxCustomIntervalDays {
			return fmt.Errorf("%w: %d (allowed %d..%d)",
				ErrInvalidInterval, *cfg.CustomIntervalDays, domain.MinCustomIntervalDays, domain.MaxCustomIntervalDays)
		}
	} else if cfg.CustomIntervalDays != nil {
		return fmt.Errorf("%w: customIntervalDays is only allowed for custom rule", ErrInvalidInterval)
	}

	return nil
}

// addMonthsClamped прибавляет months календарных месяцев с зажимом дня месяца.
// time.AddDate здесь не подходит: он нормализует переполнение переносом
// в следующий месяц (31 января + месяц = 2/3 марта).
func addMonthsClamped(anchor time.Time, months int) time.Time {
	year := anchor.Year()
	month := int(anchor.Month()) + months

	// Приводим месяц к диапазону 1..12 с переносом лет
	year += (month - 1) / 12
	month = (month-1)%12 + 1

	day := anchor.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, anchor.Location())
}

// daysInMonth возвращает количество дней в месяце
func daysInMonth(year int, month time.Month) int {
	// Нулевой день следующего месяца - это последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
