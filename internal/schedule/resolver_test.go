package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func tsp(t *testing.T, s string) *types.TimeString {
	t.Helper()
	v := ts(t, s)
	return &v
}

// businessRow строка часов работы на день недели, открыто с перерывом или без
func businessRow(t *testing.T, unitID *int64, dayOfWeek int, open, close string) *domain.BusinessHours {
	t.Helper()
	return &domain.BusinessHours{
		TenantID:  1,
		UnitID:    unitID,
		DayOfWeek: dayOfWeek,
		IsOpen:    true,
		OpenTime:  tsp(t, open),
		CloseTime: tsp(t, close),
	}
}

func TestResolve_BlockedDateWinsOverEverything(t *testing.T) {
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	// Даже при открытом особом дне и настроенных часах блокировка побеждает
	in := DayInput{
		Blocked: true,
		Special: &domain.SpecialDay{
			TenantID:  1,
			Date:      date,
			IsOpen:    true,
			OpenTime:  tsp(t, "10:00"),
			CloseTime: tsp(t, "16:00"),
		},
		Business: []*domain.BusinessHours{
			businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
		},
	}

	result := Resolve(Query{Date: date, Time: tsp(t, "11:00")}, in)

	assert.False(t, result.IsValid)
	assert.Equal(t, domain.ReasonDateBlocked, result.Reason)
	assert.Nil(t, result.AvailableHours)
}

func TestResolve_SpecialDay(t *testing.T) {
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC) // четверг

	t.Run("closed special day rejects the whole day", func(t *testing.T) {
		in := DayInput{
			Special: &domain.SpecialDay{TenantID: 1, Date: date, IsOpen: false},
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonClosedSpecial, result.Reason)
	})

	t.Run("open special day overrides business hours and staff schedule", func(t *testing.T) {
		staff := &domain.StaffSchedule{TenantID: 1, StaffID: 7}
		// График мастера пустой (все дни выходные), но особый день его игнорирует
		in := DayInput{
			Special: &domain.SpecialDay{
				TenantID:  1,
				Date:      date,
				IsOpen:    true,
				OpenTime:  tsp(t, "10:00"),
				CloseTime: tsp(t, "14:00"),
			},
			Staff: staff,
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date, Time: tsp(t, "10:30"), StaffID: ptr.Ptr(int64(7))}, in)

		require.True(t, result.IsValid)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "10:00"), result.AvailableHours.Start)
		assert.Equal(t, ts(t, "14:00"), result.AvailableHours.End)
	})

	t.Run("time outside special hours is rejected with hours attached", func(t *testing.T) {
		in := DayInput{
			Special: &domain.SpecialDay{
				TenantID:  1,
				Date:      date,
				IsOpen:    true,
				OpenTime:  tsp(t, "10:00"),
				CloseTime: tsp(t, "14:00"),
			},
		}

		result := Resolve(Query{Date: date, Time: tsp(t, "15:00")}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "10:00"), result.AvailableHours.Start)
	})
}

func TestResolve_StaffSchedule(t *testing.T) {
	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC) // понедельник
	staffID := int64(7)

	workingWeek := func() domain.WeekSchedule {
		var week domain.WeekSchedule
		week[int(time.Monday)] = domain.DaySchedule{
			Enabled: true,
			Start:   ts(t, "11:00"),
			End:     ts(t, "20:00"),
		}
		return week
	}

	t.Run("staff day off", func(t *testing.T) {
		var week domain.WeekSchedule // все дни выходные
		in := DayInput{
			Staff: &domain.StaffSchedule{TenantID: 1, StaffID: staffID, Week: week},
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date, StaffID: &staffID}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonStaffDayOff, result.Reason)
	})

	t.Run("staff schedule wins over business hours", func(t *testing.T) {
		in := DayInput{
			Staff: &domain.StaffSchedule{TenantID: 1, StaffID: staffID, Week: workingWeek()},
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		// 19:00 вне часов работы тенанта, но внутри графика мастера
		result := Resolve(Query{Date: date, Time: tsp(t, "19:00"), StaffID: &staffID}, in)

		require.True(t, result.IsValid)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "11:00"), result.AvailableHours.Start)
		assert.Equal(t, ts(t, "20:00"), result.AvailableHours.End)
	})

	t.Run("staff schedule ignored without staff in query", func(t *testing.T) {
		in := DayInput{
			Staff: &domain.StaffSchedule{TenantID: 1, StaffID: staffID, Week: workingWeek()},
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date, Time: tsp(t, "19:00")}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
	})

	t.Run("unit override replaces default staff week", func(t *testing.T) {
		unitID := int64(3)
		var overrideWeek domain.WeekSchedule
		overrideWeek[int(time.Monday)] = domain.DaySchedule{
			Enabled: true,
			Start:   ts(t, "14:00"),
			End:     ts(t, "22:00"),
		}

		in := DayInput{
			Staff: &domain.StaffSchedule{
				TenantID:      1,
				StaffID:       staffID,
				Week:          workingWeek(),
				UnitOverrides: map[int64]domain.WeekSchedule{unitID: overrideWeek},
			},
		}

		result := Resolve(Query{Date: date, Time: tsp(t, "12:00"), StaffID: &staffID, UnitID: &unitID}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "14:00"), result.AvailableHours.Start)
	})
}

func TestResolve_BusinessHours(t *testing.T) {
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC) // среда

	t.Run("unit row wins over tenant row", func(t *testing.T) {
		unitID := int64(2)
		in := DayInput{
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
				businessRow(t, &unitID, int(date.Weekday()), "12:00", "21:00"),
			},
		}

		result := Resolve(Query{Date: date, UnitID: &unitID}, in)

		require.True(t, result.IsValid)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "12:00"), result.AvailableHours.Start)
		assert.Equal(t, ts(t, "21:00"), result.AvailableHours.End)
	})

	t.Run("foreign unit row falls back to tenant row", func(t *testing.T) {
		otherUnit := int64(5)
		queryUnit := int64(2)
		in := DayInput{
			Business: []*domain.BusinessHours{
				businessRow(t, &otherUnit, int(date.Weekday()), "12:00", "21:00"),
				businessRow(t, nil, int(date.Weekday()), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date, UnitID: &queryUnit}, in)

		require.True(t, result.IsValid)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "09:00"), result.AvailableHours.Start)
	})

	t.Run("configured week without this weekday means closed", func(t *testing.T) {
		// Строки есть, но только на вторник - среда закрыта, дефолт не применяется
		in := DayInput{
			Business: []*domain.BusinessHours{
				businessRow(t, nil, int(time.Tuesday), "09:00", "18:00"),
			},
		}

		result := Resolve(Query{Date: date}, in)

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
	})

	t.Run("no rows at all falls back to default week", func(t *testing.T) {
		result := Resolve(Query{Date: date, Time: tsp(t, "09:00")}, DayInput{})

		require.True(t, result.IsValid)
		require.NotNil(t, result.AvailableHours)
		assert.Equal(t, ts(t, "09:00"), result.AvailableHours.Start)
		assert.Equal(t, ts(t, "18:00"), result.AvailableHours.End)
	})

	t.Run("default week keeps sunday closed", func(t *testing.T) {
		sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

		result := Resolve(Query{Date: sunday}, DayInput{})

		assert.False(t, result.IsValid)
		assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
	})
}

func TestResolve_HalfOpenTimeWindows(t *testing.T) {
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	row := businessRow(t, nil, int(date.Weekday()), "09:00", "18:00")
	row.BreakStart = tsp(t, "12:00")
	row.BreakEnd = tsp(t, "13:00")
	in := DayInput{Business: []*domain.BusinessHours{row}}

	tests := []struct {
		name       string
		time       string
		wantValid  bool
		wantReason string
	}{
		{name: "opening boundary is inside", time: "09:00", wantValid: true},
		{name: "closing boundary is outside", time: "18:00", wantValid: false, wantReason: domain.ReasonOutsideHours},
		{name: "before opening", time: "08:30", wantValid: false, wantReason: domain.ReasonOutsideHours},
		{name: "break start is inside break", time: "12:00", wantValid: false, wantReason: domain.ReasonInsideBreak},
		{name: "middle of break", time: "12:30", wantValid: false, wantReason: domain.ReasonInsideBreak},
		{name: "break end is outside break", time: "13:00", wantValid: true},
		{name: "last half hour", time: "17:30", wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resolve(Query{Date: date, Time: tsp(t, tt.time)}, in)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantReason, result.Reason)
			// Окно дня возвращается и при отказе по времени
			require.NotNil(t, result.AvailableHours)
			assert.Equal(t, ts(t, "09:00"), result.AvailableHours.Start)
			assert.Equal(t, ts(t, "18:00"), result.AvailableHours.End)
		})
	}
}
