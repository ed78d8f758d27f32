package create_appointment

import (
	"fmt"
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет дату против политики бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет минимальный интервал до начала записи
func validateNotice(requestDate time.Time, startMinutes int, now time.Time, minNoticeMinutes int) error {
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
	if startMinutes-nowMinutes < minNoticeMinutes {
		return fmt.Errorf("%w: requires %d minutes notice", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateSlotGrid проверяет, что время начала попадает на сетку слотов
func validateSlotGrid(startMinutes int) error {
	if startMinutes%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: start time must be aligned to %d minutes", ErrInvalidTimeSlot, domain.SlotStepMinutes)
	}
	return nil
}

// validateStaffPerformsService проверяет, что мастер выполняет услугу
func validateStaffPerformsService(service *directory.Service, staffID int64) error {
	if !service.PerformedBy(staffID) {
		return ErrStaffNotEligible
	}
	return nil
}
