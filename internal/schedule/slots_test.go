package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
)

func TestGenerateSlots_GridWithBreak(t *testing.T) {
	hours := &domain.AvailableHours{
		Start:      ts(t, "09:00"),
		End:        ts(t, "18:00"),
		BreakStart: tsp(t, "12:00"),
		BreakEnd:   tsp(t, "13:00"),
	}

	slots := GenerateSlots(hours, 30)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.String())
	}

	// 11:30+30=12:00 - касание перерыва допустимо; перерыв выпадает целиком
	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00", "17:30",
	}
	assert.Equal(t, want, got)
}

func TestGenerateSlots_LongServiceCrossesBreak(t *testing.T) {
	hours := &domain.AvailableHours{
		Start:      ts(t, "09:00"),
		End:        ts(t, "18:00"),
		BreakStart: tsp(t, "12:00"),
		BreakEnd:   tsp(t, "13:00"),
	}

	slots := GenerateSlots(hours, 90)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.String())
	}

	// 11:00 и 11:30 пересекли бы перерыв; 17:00 и позже не помещаются до закрытия
	want := []string{
		"09:00", "09:30", "10:00", "10:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}
	assert.Equal(t, want, got)
}

func TestGenerateSlots_FitBeforeClose(t *testing.T) {
	hours := &domain.AvailableHours{
		Start: ts(t, "09:00"),
		End:   ts(t, "10:00"),
	}

	// Услуга 45 минут: только 09:00 помещается (09:30+45 > 10:00)
	slots := GenerateSlots(hours, 45)

	assert.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].String())
}

func TestGenerateSlots_Empty(t *testing.T) {
	t.Run("closed day", func(t *testing.T) {
		slots := GenerateSlots(nil, 30)
		assert.Empty(t, slots)
		assert.NotNil(t, slots)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		hours := &domain.AvailableHours{Start: ts(t, "09:00"), End: ts(t, "18:00")}
		assert.Empty(t, GenerateSlots(hours, 0))
		assert.Empty(t, GenerateSlots(hours, -15))
	})

	t.Run("service longer than the whole day", func(t *testing.T) {
		hours := &domain.AvailableHours{Start: ts(t, "09:00"), End: ts(t, "10:00")}
		assert.Empty(t, GenerateSlots(hours, 90))
	})
}
