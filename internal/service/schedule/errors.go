package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда график мастера не найден
	ErrScheduleNotFound = errors.New("staff schedule not found")

	// ErrSpecialDayNotFound возвращается, когда особый день не найден
	ErrSpecialDayNotFound = errors.New("special day not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
