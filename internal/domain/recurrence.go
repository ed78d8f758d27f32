package domain

import "time"

// RecurrenceRule правило повторения серии записей
type RecurrenceRule string

const (
	RecurrenceWeekly   RecurrenceRule = "weekly"
	RecurrenceBiweekly RecurrenceRule = "biweekly"
	RecurrenceMonthly  RecurrenceRule = "monthly"
	RecurrenceCustom   RecurrenceRule = "custom"
)

// IsValid проверяет, что правило из допустимого набора
func (r RecurrenceRule) IsValid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

// RecurrenceConfig параметры генерации серии дат
type RecurrenceConfig struct {
	Rule               RecurrenceRule
	Count              int  // количество повторений, включая якорную дату
	CustomIntervalDays *int // обязателен только для rule=custom
}

// GeneratedDate одна дата серии.
// Index 0 - якорная дата; Key - дата в формате YYYY-MM-DD,
// используется как ключ результата проверки доступности.
type GeneratedDate struct {
	Date  time.Time
	Index int
	Key   string
}

// Границы параметров повторения
const (
	MinRecurrenceCount    = 1
	MaxRecurrenceCount    = 52
	MinCustomIntervalDays = 1
	MaxCustomIntervalDays = 90
)
