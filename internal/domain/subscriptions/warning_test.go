package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningFor(t *testing.T) {
	tests := []struct {
		hoursLeft float64
		want      WarningTier
	}{
		{10, TierNone},
		{4.5, TierNone},
		{4, TierWarning},
		{3, TierWarning},
		{2, TierDanger},
		{0.5, TierDanger},
		{0, TierBlocked},
		{-3, TierBlocked},
	}
	for _, tt := range tests {
		w := WarningFor(tt.hoursLeft)
		assert.Equalf(t, tt.want, w.Tier, "hoursLeft=%.1f", tt.hoursLeft)
		assert.Equal(t, tt.hoursLeft, w.HoursLeft)
	}
}

func TestWarning_Message(t *testing.T) {
	assert.Empty(t, WarningFor(10).Message)
	assert.NotEmpty(t, WarningFor(3).Message)
	assert.NotEmpty(t, WarningFor(0).Message)
}

func TestWarning_AllowsRenewal(t *testing.T) {
	// only the blocked tier exposes the renew action
	assert.True(t, WarningFor(-1).AllowsRenewal())
	assert.True(t, WarningFor(0).AllowsRenewal())
	assert.False(t, WarningFor(1).AllowsRenewal())
	assert.False(t, WarningFor(5).AllowsRenewal())
}
