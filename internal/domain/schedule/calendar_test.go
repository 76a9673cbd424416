package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestDateSelectable_Sundays(t *testing.T) {
	now := date(2026, time.March, 2, 9) // Monday

	// every Sunday of March 2026
	for _, d := range []int{8, 15, 22, 29} {
		sunday := date(2026, time.March, d, 12)
		require.Equal(t, time.Sunday, sunday.Weekday())
		assert.False(t, DateSelectable(now, sunday, nil), "Sunday %d must not be selectable", d)
	}
}

func TestDateSelectable_Holidays(t *testing.T) {
	now := date(2026, time.March, 2, 9)
	holidays := NewHolidays("2026-04-06", "2026-05-01")

	// holiday wins regardless of weekday
	assert.False(t, DateSelectable(now, date(2026, time.April, 6, 12), holidays)) // Monday
	assert.False(t, DateSelectable(now, date(2026, time.May, 1, 12), holidays))   // Friday
	assert.True(t, DateSelectable(now, date(2026, time.April, 7, 12), holidays))  // day after
}

func TestDateSelectable_Past(t *testing.T) {
	now := date(2026, time.March, 4, 10) // Wednesday 10:00

	assert.False(t, DateSelectable(now, date(2026, time.March, 3, 12), nil), "yesterday")
	assert.True(t, DateSelectable(now, date(2026, time.March, 5, 0), nil), "tomorrow")

	// comparison is on full instants: today at midnight is already in
	// the past, today later the same day is still selectable
	assert.False(t, DateSelectable(now, date(2026, time.March, 4, 0), nil))
	assert.True(t, DateSelectable(now, date(2026, time.March, 4, 14), nil))
}

func TestDateSelectable_NilHolidaySet(t *testing.T) {
	now := date(2026, time.March, 2, 9)
	assert.True(t, DateSelectable(now, date(2026, time.March, 3, 12), nil))
}

func TestNextSelectable(t *testing.T) {
	now := date(2026, time.March, 6, 9)   // Friday
	holidays := NewHolidays("2026-03-07") // Saturday closed

	// Saturday is a holiday, the 8th is Sunday -> Monday the 9th
	got := NextSelectable(now, date(2026, time.March, 7, 12), holidays, 14)
	require.False(t, got.IsZero())
	assert.Equal(t, 9, got.Day())

	// nothing within the horizon
	all := NewHolidays()
	for d := 7; d <= 10; d++ {
		all[date(2026, time.March, d, 0).Format(ISODate)] = struct{}{}
	}
	got = NextSelectable(now, date(2026, time.March, 7, 12), all, 2)
	assert.True(t, got.IsZero())
}
