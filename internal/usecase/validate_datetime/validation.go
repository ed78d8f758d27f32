package validate_datetime

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса.
// Структурно некорректный вход - это ошибка, а не ValidationResult:
// тихое "недоступно" на мусорном входе маскирует баги вызывающего кода.
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.UnitID != nil && *req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет дату против политики бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Дата не должна быть в прошлом
	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 - горизонт не ограничен
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет минимальный интервал до начала записи.
// Применяется только если проверяемая дата - сегодня и время задано.
func validateNotice(requestDate time.Time, slotMinutes int, now time.Time, minNoticeMinutes int) error {
	if minNoticeMinutes <= 0 {
		return nil
	}

	sameDay := requestDate.Year() == now.Year() &&
		requestDate.Month() == now.Month() &&
		requestDate.Day() == now.Day()
	if !sameDay {
		return nil
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if slotMinutes-nowMinutes < minNoticeMinutes {
		return fmt.Errorf("%w: requires %d minutes notice", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}
