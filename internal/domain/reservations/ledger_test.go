package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(day int, startHour, endHour int) (time.Time, time.Time) {
	start := time.Date(2026, time.March, day, startHour, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, day, endHour, 0, 0, 0, time.UTC)
	return start, end
}

func TestNew_FreezesCost(t *testing.T) {
	start, end := slot(3, 10, 13)
	r, err := New(1, "prusa-mk4", "Prusa MK4", start, end, 2000, StatusConfirmed, "")
	require.NoError(t, err)

	assert.Equal(t, 6000.0, r.TotalCost)

	// a later rate change on the machine never touches the reservation
	assert.Equal(t, 6000.0, r.TotalCost, "cost is frozen at creation")
	assert.Equal(t, 3.0, r.Hours())
}

func TestNew_CarriesNotes(t *testing.T) {
	start, end := slot(3, 10, 12)
	r, err := New(1, "laser-x1", "Laser X1", start, end, 1500, StatusConfirmed, "première utilisation")
	require.NoError(t, err)
	assert.Equal(t, "première utilisation", r.Notes)
}

func TestNew_InvalidRange(t *testing.T) {
	start, end := slot(3, 13, 10)
	_, err := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = New(1, "m", "M", start, start, 1000, StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNew_RejectsCancelledStart(t *testing.T) {
	start, end := slot(3, 10, 12)
	_, err := New(1, "m", "M", start, end, 1000, StatusCancelled, "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestCancel_PendingRejected(t *testing.T) {
	start, end := slot(3, 10, 12)
	r, err := New(1, "m", "M", start, end, 1000, StatusPending, "")
	require.NoError(t, err)

	assert.ErrorIs(t, r.Cancel(), ErrInvalidStateTransition)
	assert.Equal(t, StatusPending, r.Status, "status unchanged")
}

func TestCancel_ConfirmedExactlyOnce(t *testing.T) {
	start, end := slot(3, 10, 12)
	r, err := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")
	require.NoError(t, err)

	require.NoError(t, r.Cancel())
	assert.Equal(t, StatusCancelled, r.Status)

	// second cancel is a rejected no-op
	assert.ErrorIs(t, r.Cancel(), ErrInvalidStateTransition)
	assert.Equal(t, StatusCancelled, r.Status)
}

func TestConfirm(t *testing.T) {
	start, end := slot(3, 10, 12)
	r, _ := New(1, "m", "M", start, end, 1000, StatusPending, "")

	require.NoError(t, r.Confirm())
	assert.Equal(t, StatusConfirmed, r.Status)

	// no way back to pending, no double confirm
	assert.ErrorIs(t, r.Confirm(), ErrInvalidStateTransition)

	require.NoError(t, r.Cancel())
	assert.ErrorIs(t, r.Confirm(), ErrInvalidStateTransition, "cancelled is terminal")
}

func TestLedger_AddAssignsIDs(t *testing.T) {
	l := NewLedger()
	start, end := slot(3, 10, 12)
	r1, _ := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")
	r2, _ := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")

	assert.Equal(t, int64(1), l.Add(r1).ID)
	assert.Equal(t, int64(2), l.Add(r2).ID)
}

func TestLedger_Cancel(t *testing.T) {
	l := NewLedger()
	start, end := slot(3, 10, 12)
	confirmed, _ := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")
	pending, _ := New(1, "m", "M", start, end, 1000, StatusPending, "")
	l.Add(confirmed)
	l.Add(pending)

	require.NoError(t, l.Cancel(confirmed.ID))
	assert.ErrorIs(t, l.Cancel(confirmed.ID), ErrInvalidStateTransition)
	assert.ErrorIs(t, l.Cancel(pending.ID), ErrInvalidStateTransition)
	assert.ErrorIs(t, l.Cancel(999), ErrNotFound)
}

func TestLedger_ListByUser(t *testing.T) {
	l := NewLedger()
	start, end := slot(3, 10, 12)
	mine, _ := New(1, "m", "M", start, end, 1000, StatusConfirmed, "")
	other, _ := New(2, "m", "M", start, end, 1000, StatusConfirmed, "")
	l.Add(mine)
	l.Add(other)

	got := l.ListByUser(1)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
	assert.Empty(t, l.ListByUser(3))
}

func TestLedger_ConfirmedHours(t *testing.T) {
	l := NewLedger()

	s1, e1 := slot(3, 10, 13) // 3h confirmed
	r1, _ := New(1, "m", "M", s1, e1, 1000, StatusConfirmed, "")
	l.Add(r1)

	s2, e2 := slot(4, 8, 10) // 2h pending, not counted
	r2, _ := New(1, "m", "M", s2, e2, 1000, StatusPending, "")
	l.Add(r2)

	s3, e3 := slot(5, 9, 11) // cancelled, not counted
	r3, _ := New(1, "m", "M", s3, e3, 1000, StatusConfirmed, "")
	l.Add(r3)
	require.NoError(t, l.Cancel(r3.ID))

	assert.Equal(t, 3.0, l.ConfirmedHours(1))
	assert.Zero(t, l.ConfirmedHours(2))
}
