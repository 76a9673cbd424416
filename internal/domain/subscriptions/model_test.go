package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TypeDetection(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want Type
	}{
		{"explicit student", Raw{SubscriptionType: "STUDENT"}, TypeStudent},
		{"explicit professional", Raw{SubscriptionType: "PROFESSIONAL"}, TypeProfessional},
		{"legacy student alias", Raw{Type: "student"}, TypeStudent},
		{"legacy monthly alias", Raw{Type: "monthly"}, TypeStudent},
		// alias matching is case-sensitive, on purpose
		{"capitalized alias does not match", Raw{Type: "Student"}, TypeProfessional},
		{"upper-case alias does not match", Raw{Type: "MONTHLY"}, TypeProfessional},
		{"unknown defaults to professional", Raw{Type: "yearly"}, TypeProfessional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).Type)
		})
	}
}

func TestNormalize_Status(t *testing.T) {
	// status matching is case-insensitive, unlike the type aliases
	assert.True(t, Normalize(Raw{Status: "APPROVED"}).Active)
	assert.True(t, Normalize(Raw{Status: "Active"}).Active)
	assert.False(t, Normalize(Raw{Status: "pending"}).Active)
	assert.Equal(t, StatusPending, Normalize(Raw{Status: " Pending "}).Status)
	assert.Equal(t, StatusInactive, Normalize(Raw{Status: "expired"}).Status)

	// explicit flag wins over a non-active status
	yes := true
	s := Normalize(Raw{Status: "pending", IsActive: &yes})
	assert.True(t, s.Active)
	assert.Equal(t, StatusPending, s.Status)
}

func TestHourLimit(t *testing.T) {
	assert.Equal(t, 15, Subscription{Type: TypeStudent}.HourLimit())
	assert.Equal(t, 20, Subscription{Type: TypeProfessional}.HourLimit())

	// explicit plan quota always wins over the type default
	assert.Equal(t, 25, Subscription{Type: TypeStudent, MaxHoursPerMonth: 25}.HourLimit())
	assert.Equal(t, 10, Subscription{Type: TypeProfessional, MaxHoursPerMonth: 10}.HourLimit())
}
