package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHours(t *testing.T) {
	got := StartHours()
	require.Len(t, got, 10)
	assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17}, got)
}

func TestEndHours(t *testing.T) {
	for _, start := range StartHours() {
		for _, end := range EndHours(start) {
			assert.Greater(t, end, start)
			assert.GreaterOrEqual(t, end, OpenHour+1)
			assert.LessOrEqual(t, end, CloseHour)
		}
	}

	assert.Equal(t, []int{18}, EndHours(17))
	assert.Len(t, EndHours(8), 10)
	assert.Empty(t, EndHours(18))
}

func TestCost(t *testing.T) {
	got, err := Cost(10, 13, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got)

	got, err = Cost(8, 18, 2500)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, got)
}

func TestCost_InvalidRange(t *testing.T) {
	// end before start must never yield a (negative) cost
	got, err := Cost(10, 9, 1000)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Zero(t, got)

	got, err = Cost(10, 10, 1000)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Zero(t, got)
}

func TestDuration(t *testing.T) {
	d, err := Duration(8, 12)
	require.NoError(t, err)
	assert.Equal(t, 4, d)

	_, err = Duration(12, 8)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCanSubmit(t *testing.T) {
	assert.True(t, CanSubmit(10, 12, true))

	assert.False(t, CanSubmit(10, 12, false), "quota check failed")
	assert.False(t, CanSubmit(0, 12, true), "start not picked")
	assert.False(t, CanSubmit(10, 0, true), "end not picked")
	assert.False(t, CanSubmit(12, 10, true), "inverted range")
	assert.False(t, CanSubmit(12, 12, true), "zero duration")
}
