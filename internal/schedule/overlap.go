package schedule

import "github.com/barbersmart/BS-AvailabilityService/internal/domain"

// HasOverlap проверяет, пересекается ли интервал-кандидат с занятыми интервалами.
//
// Все интервалы полуоткрытые: пересечение есть только при
// candidateStart < bookedEnd И candidateEnd > bookedStart.
// Запись, заканчивающаяся ровно в начале кандидата (или начинающаяся ровно
// в его конце), пересечением НЕ считается.
//
// Чистая функция без побочных эффектов; возвращает true при первом совпадении.
func HasOverlap(candidateStartMinutes, durationMinutes int, booked []domain.BookedInterval) bool {
	candidateEnd := candidateStartMinutes + durationMinutes

	for _, b := range booked {
		bookedEnd := b.StartMinutes + b.DurationMinutes
		if candidateStartMinutes < bookedEnd && candidateEnd > b.StartMinutes {
			return true
		}
	}

	return false
}

// ActiveIntervals извлекает занятые интервалы из активных записей.
// Отмененные и no-show записи слот не занимают.
func ActiveIntervals(appointments []*domain.Appointment) []domain.BookedInterval {
	intervals := make([]domain.BookedInterval, 0, len(appointments))

	for _, a := range appointments {
		if a == nil || !a.IsActive() {
			continue
		}
		intervals = append(intervals, a.ToBookedInterval())
	}

	return intervals
}
