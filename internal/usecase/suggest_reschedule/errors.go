package suggest_reschedule

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("suggest_reschedule: appointment not found")

	// ErrAppointmentNotEligible возвращается, когда запись нельзя пометить no-show
	ErrAppointmentNotEligible = errors.New("suggest_reschedule: appointment is not eligible for no-show")

	// ErrNoSuggestions возвращается, когда в горизонте поиска нет свободных слотов
	ErrNoSuggestions = errors.New("suggest_reschedule: no available slots to suggest")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("suggest_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("suggest_reschedule: internal error")
)
