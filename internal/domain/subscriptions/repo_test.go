package subscriptions

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRow struct{ vals []any }

func (r stubRow) Scan(dest ...any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

func subRow(subType, status string, maxHours int) stubRow {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return stubRow{vals: []any{
		int64(1), int64(7), "Awa Diop", subType, maxHours, status,
		now.AddDate(0, 1, 0), now, now,
	}}
}

// Stored rows must pass through the same normalization as API payloads,
// legacy aliases in sub_type included.
func TestScanSubNormalizes(t *testing.T) {
	cases := []struct {
		subType string
		student bool
		limit   int
	}{
		{"STUDENT", true, 15},
		{"PROFESSIONAL", false, 20},
		{"student", true, 15},
		{"monthly", true, 15},
		{"Student", false, 20}, // aliases match case-sensitively
		{"MONTHLY", false, 20},
	}
	for _, c := range cases {
		s, err := scanSub(subRow(c.subType, "approved", 0))
		require.NoError(t, err, c.subType)
		require.Equal(t, c.student, s.IsStudent(), c.subType)
		require.Equal(t, c.limit, s.HourLimit(), c.subType)
		require.True(t, s.Active, c.subType)
	}
}

func TestScanSubStatusAndQuota(t *testing.T) {
	s, err := scanSub(subRow("PROFESSIONAL", "pending", 30))
	require.NoError(t, err)
	require.Equal(t, StatusPending, s.Status)
	require.False(t, s.Active)
	require.Equal(t, 30, s.HourLimit())
	require.False(t, s.CreatedAt.IsZero())
	require.False(t, s.UpdatedAt.IsZero())
}
