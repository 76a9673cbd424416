package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookable(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusOperational, true},
		{StatusAvailable, true},
		{StatusMaintenance, false},
		{StatusBroken, false},
		{StatusOccupied, false},
	}
	for _, tt := range tests {
		m := Machine{ID: "laser-01", Status: tt.status}
		assert.Equalf(t, tt.want, m.Bookable(), "status %s", tt.status)
	}
}
