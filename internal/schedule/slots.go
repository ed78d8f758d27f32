package schedule

import (
	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// GenerateSlots генерирует стартовые времена слотов внутри рабочего окна.
//
// Слоты идут по фиксированной сетке domain.SlotStepMinutes (30 минут)
// независимо от длительности услуги. Слот принимается, только если:
//   - услуга целиком помещается до закрытия: start + duration <= end
//   - интервал [start, start+duration) не пересекает перерыв
//     [breakStart, breakEnd); касание границ пересечением не считается
//
// Для закрытого дня (hours == nil) или неположительной длительности
// возвращается пустой список.
func GenerateSlots(hours *domain.AvailableHours, serviceDurationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if hours == nil || serviceDurationMinutes <= 0 {
		return slots
	}

	open := hours.Start.MinutesOfDay()
	close := hours.End.MinutesOfDay()

	var breakStart, breakEnd int
	hasBreak := hours.BreakStart != nil && hours.BreakEnd != nil
	if hasBreak {
		breakStart = hours.BreakStart.MinutesOfDay()
		breakEnd = hours.BreakEnd.MinutesOfDay()
	}

	for start := open; start < close; start += domain.SlotStepMinutes {
		end := start + serviceDurationMinutes

		// Услуга должна закончиться до закрытия
		if end > close {
			break
		}

		// Слот не должен пересекать перерыв
		if hasBreak && start < breakEnd && end > breakStart {
			continue
		}

		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}
