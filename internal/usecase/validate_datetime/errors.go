package validate_datetime

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_datetime: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("validate_datetime: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("validate_datetime: date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("validate_datetime: too late to book this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_datetime: internal error")
)
