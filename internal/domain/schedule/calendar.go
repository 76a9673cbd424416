package schedule

import "time"

// ISODate is the key format used for holiday lookups.
const ISODate = "2006-01-02"

// Holidays is a set of closed dates keyed by "YYYY-MM-DD".
type Holidays map[string]struct{}

// NewHolidays builds a set from a list of ISO date strings.
func NewHolidays(dates ...string) Holidays {
	h := make(Holidays, len(dates))
	for _, d := range dates {
		h[d] = struct{}{}
	}
	return h
}

func (h Holidays) Contains(date time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[date.Format(ISODate)]
	return ok
}

// DateSelectable reports whether date can be offered for booking.
// A date is rejected when it falls on a Sunday, when it is listed as a
// holiday, or when it lies strictly before now.
//
// The "before now" check compares full instants, not calendar days: a
// date at 00:00:00 today is rejected as soon as now has passed midnight.
// The historical booking flow behaves this way, so callers that want
// "today is still bookable" must pass the date with an end-of-day clock.
func DateSelectable(now, date time.Time, holidays Holidays) bool {
	if date.Weekday() == time.Sunday {
		return false
	}
	if holidays.Contains(date) {
		return false
	}
	if date.Before(now) {
		return false
	}
	return true
}

// NextSelectable returns the first selectable date at or after from,
// scanning day by day. Returns the zero time if nothing is selectable
// within the given horizon in days.
func NextSelectable(now, from time.Time, holidays Holidays, horizonDays int) time.Time {
	d := from
	for i := 0; i <= horizonDays; i++ {
		if DateSelectable(now, d, holidays) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}
}
