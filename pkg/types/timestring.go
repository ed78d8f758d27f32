package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Формат времени HH:MM (24-часовой)
const timeLayout = "15:04"

// Количество минут в сутках
const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате строки времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time value out of day range")
)

// TimeString время суток в формате "HH:MM" без привязки к дате и часовому поясу.
// Используется для рабочих часов, перерывов и времени начала записей.
// Хранится как количество минут с начала суток (0..1440).
type TimeString struct {
	minutes int
	set     bool
}

// NewTimeString создает TimeString из компонентов времени time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), set: true}
}

// NewTimeStringFromString парсит строку вида "10:30" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return NewTimeString(t), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes, set: true}, nil
}

// String возвращает строковое представление "HH:MM"
// Граничное значение конца суток представляется как "24:00"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// IsZero возвращает true, если значение не было установлено
func (t TimeString) IsZero() bool {
	return !t.set
}

// Validate проверяет, что значение установлено и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.set {
		return fmt.Errorf("%w: empty value", ErrInvalidTimeFormat)
	}
	if t.minutes < 0 || t.minutes > minutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, t.minutes)
	}
	return nil
}

// MinutesOfDay возвращает количество минут с начала суток
func (t TimeString) MinutesOfDay() int {
	return t.minutes
}

// AddMinutes возвращает новое время, сдвинутое на delta минут вперед.
// Возвращает ошибку, если результат выходит за пределы суток -
// рабочие интервалы сервиса не пересекают полночь.
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	result := t.minutes + delta
	if result < 0 || result > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, delta)
	}
	return TimeString{minutes: result, set: true}, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true при совпадении времени
func (t TimeString) Equal(other TimeString) bool {
	return t.set == other.set && t.minutes == other.minutes
}

// Scan реализует sql.Scanner для чтения колонок TIME / VARCHAR
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres отдает TIME как "HH:MM:SS" - отбрасываем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String(), nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON парсит строку "HH:MM" или null
func (t *TimeString) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*t = TimeString{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
	}
	parsed, err := NewTimeStringFromString(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
