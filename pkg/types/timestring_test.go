package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Parsing(t *testing.T) {
	v, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, 10*60+30, v.MinutesOfDay())
	assert.Equal(t, "10:30", v.String())

	for _, s := range []string{"", "10", "25:00", "10:70", "10.30", "abc"} {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", s)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	v, err := NewTimeStringFromString("23:00")
	require.NoError(t, err)

	end, err := v.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())

	// Интервалы не пересекают полночь
	_, err = v.AddMinutes(61)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = v.AddMinutes(-24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Ordering(t *testing.T) {
	early, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.True(t, early.Equal(early))
	assert.False(t, early.Equal(late))
}

func TestTimeString_Zero(t *testing.T) {
	var zero TimeString

	assert.True(t, zero.IsZero())
	assert.Error(t, zero.Validate())

	set, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.False(t, set.IsZero())
	assert.Equal(t, "00:00", set.String())

	// Полночь начала суток и незаданное значение различимы
	assert.False(t, zero.Equal(set))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("postgres TIME with seconds", func(t *testing.T) {
		var v TimeString
		require.NoError(t, v.Scan("10:30:00"))
		assert.Equal(t, "10:30", v.String())
	})

	t.Run("bytes", func(t *testing.T) {
		var v TimeString
		require.NoError(t, v.Scan([]byte("09:15")))
		assert.Equal(t, "09:15", v.String())
	})

	t.Run("time.Time", func(t *testing.T) {
		var v TimeString
		require.NoError(t, v.Scan(time.Date(2025, 6, 2, 14, 45, 0, 0, time.UTC)))
		assert.Equal(t, "14:45", v.String())
	})

	t.Run("NULL resets the value", func(t *testing.T) {
		v, err := NewTimeStringFromString("10:00")
		require.NoError(t, err)
		require.NoError(t, v.Scan(nil))
		assert.True(t, v.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var v TimeString
		assert.ErrorIs(t, v.Scan(42), ErrInvalidTimeFormat)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", got)

	var zero TimeString
	got, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, got)
}
