package preview_recurring

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("preview_recurring: service not found")

	// ErrStaffNotEligible возвращается, когда мастер не выполняет услугу
	ErrStaffNotEligible = errors.New("preview_recurring: staff does not perform this service")

	// ErrInvalidRecurrence возвращается при некорректных параметрах повторения
	ErrInvalidRecurrence = errors.New("preview_recurring: invalid recurrence parameters")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("preview_recurring: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("preview_recurring: internal error")
)
