package subscriptions

// UsageReport is a snapshot of hours already consumed by a subscriber
// in the current calendar month.
type UsageReport struct {
	TotalHours float64
}

// Usage is the derived view the booking UI consumes.
type Usage struct {
	HourLimit       int
	UsageHours      float64
	HoursLeft       float64 // may be negative, never clamped
	UsagePercentage float64 // may exceed 100, never clamped here
	IsStudent       bool
	IsActive        bool
}

// ComputeUsage derives the monthly usage view from a subscription and
// a usage report. Either may be absent: a missing subscription falls
// back to the professional default quota, a missing report counts as
// zero consumed hours. Absent data never produces an error.
func ComputeUsage(sub *Subscription, report *UsageReport) Usage {
	var s Subscription
	if sub != nil {
		s = *sub
	}

	u := Usage{
		HourLimit: s.HourLimit(),
		IsStudent: s.IsStudent(),
		IsActive:  s.Active,
	}
	if report != nil {
		u.UsageHours = report.TotalHours
	}
	u.HoursLeft = float64(u.HourLimit) - u.UsageHours
	if u.HourLimit > 0 {
		u.UsagePercentage = u.UsageHours / float64(u.HourLimit) * 100
	}
	return u
}

// DisplayPercentage clamps the usage percentage to [0,100] for the
// progress bar width. Tier logic always uses the unclamped value.
func (u Usage) DisplayPercentage() float64 {
	switch {
	case u.UsagePercentage < 0:
		return 0
	case u.UsagePercentage > 100:
		return 100
	default:
		return u.UsagePercentage
	}
}

// Severity is the progress-bar color tier. Presentation only.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityElevated Severity = "elevated"
	SeverityCritical Severity = "critical"
)

// Severity maps the unclamped usage percentage to a color tier.
// Thresholds are strict: exactly 75% and exactly 90% stay in the
// lower tier.
func (u Usage) Severity() Severity {
	switch {
	case u.UsagePercentage > 90:
		return SeverityCritical
	case u.UsagePercentage > 75:
		return SeverityElevated
	default:
		return SeverityNormal
	}
}

// CanReserve reports whether a new reservation of the given duration
// fits in the remaining quota.
func (u Usage) CanReserve(hours int) bool {
	return u.HoursLeft >= float64(hours) && hours > 0
}
