package subscriptions

import (
	"strings"
	"time"
)

type Type string

const (
	TypeStudent      Type = "STUDENT"
	TypeProfessional Type = "PROFESSIONAL"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive"
)

// Default monthly hour quotas when the plan does not carry an explicit one.
const (
	DefaultStudentHours      = 15
	DefaultProfessionalHours = 20
)

// Subscription is the canonical record the usage tracker operates on.
// It is only ever produced by Normalize; the rest of the code never
// sees the raw API/legacy shapes.
type Subscription struct {
	ID               int64
	UserID           int64
	UserName         string
	Type             Type
	MaxHoursPerMonth int // explicit plan quota; 0 when the type default applies
	Status           Status
	Active           bool
	EndDate          time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Raw is a subscription as received from the backend API or from
// legacy fixtures, before normalization. The same concept arrives
// under differently named fields depending on the producer.
type Raw struct {
	ID               int64
	UserID           int64
	UserName         string
	SubscriptionType string // "STUDENT" | "PROFESSIONAL"
	Type             string // legacy alias: "student" | "monthly"
	MaxHoursPerMonth int    // 0 means not supplied
	Status           string
	IsActive         *bool // some producers send an explicit flag instead of a status
	EndDate          time.Time
}

// isStudentType matches the student plan. The legacy aliases "student"
// and "monthly" are compared case-SENSITIVELY: "Student" or "MONTHLY"
// do not match. Every other status comparison in this package is
// case-insensitive; this one mirrors the historical booking flow and
// must not be changed without a product decision.
func isStudentType(subscriptionType, legacyType string) bool {
	if subscriptionType == string(TypeStudent) {
		return true
	}
	return legacyType == "student" || legacyType == "monthly"
}

// Normalize collapses the duck-typed raw shapes into one canonical
// Subscription. All downstream logic (usage, warnings, booking gates)
// consumes only the result.
func Normalize(r Raw) Subscription {
	s := Subscription{
		ID:               r.ID,
		UserID:           r.UserID,
		UserName:         r.UserName,
		MaxHoursPerMonth: r.MaxHoursPerMonth,
		EndDate:          r.EndDate,
	}

	if isStudentType(r.SubscriptionType, r.Type) {
		s.Type = TypeStudent
	} else {
		s.Type = TypeProfessional
	}

	switch strings.ToLower(strings.TrimSpace(r.Status)) {
	case "approved", "active":
		s.Status = StatusApproved
		s.Active = true
	case "pending":
		s.Status = StatusPending
	default:
		s.Status = StatusInactive
	}
	if r.IsActive != nil && *r.IsActive {
		s.Active = true
	}

	return s
}

// HourLimit resolves the monthly quota: the explicit plan value when
// present, otherwise the default for the subscription type.
func (s Subscription) HourLimit() int {
	if s.MaxHoursPerMonth > 0 {
		return s.MaxHoursPerMonth
	}
	if s.Type == TypeStudent {
		return DefaultStudentHours
	}
	return DefaultProfessionalHours
}

func (s Subscription) IsStudent() bool { return s.Type == TypeStudent }
