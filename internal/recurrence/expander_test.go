package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expandDates(t *testing.T, anchor time.Time, cfg domain.RecurrenceConfig) []string {
	t.Helper()
	generated, err := Expand(anchor, cfg)
	require.NoError(t, err)

	keys := make([]string, 0, len(generated))
	for i, gd := range generated {
		assert.Equal(t, i, gd.Index)
		assert.Equal(t, gd.Date.Format(domain.DateFormat), gd.Key)
		keys = append(keys, gd.Key)
	}
	return keys
}

func TestExpand_Weekly(t *testing.T) {
	keys := expandDates(t, date(2025, time.June, 2), domain.RecurrenceConfig{
		Rule:  domain.RecurrenceWeekly,
		Count: 4,
	})

	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23"}, keys)
}

func TestExpand_Biweekly(t *testing.T) {
	keys := expandDates(t, date(2025, time.June, 2), domain.RecurrenceConfig{
		Rule:  domain.RecurrenceBiweekly,
		Count: 3,
	})

	assert.Equal(t, []string{"2025-06-02", "2025-06-16", "2025-06-30"}, keys)
}

func TestExpand_Custom(t *testing.T) {
	keys := expandDates(t, date(2025, time.January, 1), domain.RecurrenceConfig{
		Rule:               domain.RecurrenceCustom,
		Count:              4,
		CustomIntervalDays: ptr.Ptr(10),
	})

	assert.Equal(t, []string{"2025-01-01", "2025-01-11", "2025-01-21", "2025-01-31"}, keys)
}

func TestExpand_MonthlyClampsDayOfMonth(t *testing.T) {
	// 31 января: февраль зажимается до 28-го, но март возвращается на 31-е,
	// потому что каждый шаг считается от якоря
	keys := expandDates(t, date(2025, time.January, 31), domain.RecurrenceConfig{
		Rule:  domain.RecurrenceMonthly,
		Count: 5,
	})

	assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30", "2025-05-31"}, keys)
}

func TestExpand_MonthlyLeapYear(t *testing.T) {
	keys := expandDates(t, date(2023, time.December, 31), domain.RecurrenceConfig{
		Rule:  domain.RecurrenceMonthly,
		Count: 3,
	})

	// 2024 високосный - февраль дает 29-е
	assert.Equal(t, []string{"2023-12-31", "2024-01-31", "2024-02-29"}, keys)
}

func TestExpand_MonthlyCrossesYear(t *testing.T) {
	keys := expandDates(t, date(2025, time.November, 15), domain.RecurrenceConfig{
		Rule:  domain.RecurrenceMonthly,
		Count: 4,
	})

	assert.Equal(t, []string{"2025-11-15", "2025-12-15", "2026-01-15", "2026-02-15"}, keys)
}

func TestExpand_ZeroesTimeOfDay(t *testing.T) {
	anchor := time.Date(2025, time.June, 2, 15, 45, 30, 0, time.UTC)

	generated, err := Expand(anchor, domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 1})
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.June, 2), generated[0].Date)
}

func TestExpand_Validation(t *testing.T) {
	anchor := date(2025, time.June, 2)

	tests := []struct {
		name    string
		cfg     domain.RecurrenceConfig
		wantErr error
	}{
		{
			name:    "unknown rule",
			cfg:     domain.RecurrenceConfig{Rule: "daily", Count: 3},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "empty rule",
			cfg:     domain.RecurrenceConfig{Count: 3},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "count below minimum",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 0},
			wantErr: ErrInvalidCount,
		},
		{
			name:    "count above maximum",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 53},
			wantErr: ErrInvalidCount,
		},
		{
			name:    "custom without interval",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceCustom, Count: 3},
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "custom interval below minimum",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceCustom, Count: 3, CustomIntervalDays: ptr.Ptr(0)},
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "custom interval above maximum",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceCustom, Count: 3, CustomIntervalDays: ptr.Ptr(91)},
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "interval forbidden for weekly",
			cfg:     domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 3, CustomIntervalDays: ptr.Ptr(10)},
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated, err := Expand(anchor, tt.cfg)

			assert.Nil(t, generated)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpand_BoundaryCounts(t *testing.T) {
	anchor := date(2025, time.June, 2)

	one, err := Expand(anchor, domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 1})
	require.NoError(t, err)
	assert.Len(t, one, 1)

	full, err := Expand(anchor, domain.RecurrenceConfig{Rule: domain.RecurrenceWeekly, Count: 52})
	require.NoError(t, err)
	assert.Len(t, full, 52)
}
