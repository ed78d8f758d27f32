package create_appointment

import "errors"

var (
	// ErrTenantNotFound возвращается, когда барбершоп не найден
	ErrTenantNotFound = errors.New("create_appointment: tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrStaffNotEligible возвращается, когда мастер не выполняет услугу
	ErrStaffNotEligible = errors.New("create_appointment: staff does not perform this service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrDateUnavailable возвращается, когда дата или время недоступны по расписанию
	ErrDateUnavailable = errors.New("create_appointment: date or time is not available")

	// ErrSlotTaken возвращается, когда интервал пересекается с существующей записью
	ErrSlotTaken = errors.New("create_appointment: time slot is already taken")

	// ErrInvalidTimeSlot возвращается, когда время начала не попадает на сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: start time is not aligned to slot grid")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
