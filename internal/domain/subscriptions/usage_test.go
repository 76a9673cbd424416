package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeUsage_StudentDefaults(t *testing.T) {
	sub := Normalize(Raw{Type: "student", Status: "approved"})
	u := ComputeUsage(&sub, &UsageReport{TotalHours: 5})

	assert.Equal(t, 15, u.HourLimit)
	assert.Equal(t, 5.0, u.UsageHours)
	assert.Equal(t, 10.0, u.HoursLeft)
	assert.InDelta(t, 33.33, u.UsagePercentage, 0.01)
	assert.True(t, u.IsStudent)
	assert.True(t, u.IsActive)
}

func TestComputeUsage_ProfessionalNearLimit(t *testing.T) {
	sub := Normalize(Raw{SubscriptionType: "PROFESSIONAL", MaxHoursPerMonth: 20, Status: "approved"})
	u := ComputeUsage(&sub, &UsageReport{TotalHours: 19})

	assert.Equal(t, 95.0, u.UsagePercentage)
	assert.Equal(t, SeverityCritical, u.Severity())
}

func TestComputeUsage_MissingInputs(t *testing.T) {
	// no subscription: professional default, inactive
	u := ComputeUsage(nil, &UsageReport{TotalHours: 3})
	assert.Equal(t, 20, u.HourLimit)
	assert.False(t, u.IsActive)

	// no report: zero consumed
	sub := Normalize(Raw{Type: "student", Status: "approved"})
	u = ComputeUsage(&sub, nil)
	assert.Zero(t, u.UsageHours)
	assert.Equal(t, 15.0, u.HoursLeft)
}

func TestComputeUsage_Overconsumption(t *testing.T) {
	sub := Normalize(Raw{Type: "student", Status: "approved"})
	u := ComputeUsage(&sub, &UsageReport{TotalHours: 18})

	// never clamped for logic
	assert.Equal(t, -3.0, u.HoursLeft)
	assert.InDelta(t, 120.0, u.UsagePercentage, 0.01)
	// clamped only for the progress bar
	assert.Equal(t, 100.0, u.DisplayPercentage())
}

func TestSeverity_StrictThresholds(t *testing.T) {
	sub := Subscription{MaxHoursPerMonth: 100, Type: TypeProfessional}

	tests := []struct {
		hours float64
		want  Severity
	}{
		{50, SeverityNormal},
		{75, SeverityNormal}, // exactly 75 stays normal
		{75.5, SeverityElevated},
		{90, SeverityElevated}, // exactly 90 stays elevated
		{90.5, SeverityCritical},
		{120, SeverityCritical},
	}
	for _, tt := range tests {
		u := ComputeUsage(&sub, &UsageReport{TotalHours: tt.hours})
		assert.Equalf(t, tt.want, u.Severity(), "at %.1f%%", u.UsagePercentage)
	}
}

func TestCanReserve(t *testing.T) {
	sub := Normalize(Raw{Type: "student", Status: "approved"})
	u := ComputeUsage(&sub, &UsageReport{TotalHours: 12}) // 3 left

	assert.True(t, u.CanReserve(3))
	assert.False(t, u.CanReserve(4))
	assert.False(t, u.CanReserve(0))
}
