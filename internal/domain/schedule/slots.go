package schedule

import "errors"

// Opening window of the lab: reservations start between 8:00 and 17:00
// and end between 9:00 and 18:00.
const (
	OpenHour  = 8
	CloseHour = 18
)

var ErrInvalidTimeRange = errors.New("schedule: end hour must be after start hour")

// StartHours lists the valid reservation start hours, 8 through 17.
func StartHours() []int {
	hours := make([]int, 0, CloseHour-OpenHour)
	for h := OpenHour; h < CloseHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// EndHours lists the valid end hours for a reservation starting at
// startHour: every hour in [9,18] strictly greater than startHour.
func EndHours(startHour int) []int {
	var hours []int
	for h := OpenHour + 1; h <= CloseHour; h++ {
		if h > startHour {
			hours = append(hours, h)
		}
	}
	return hours
}

// Duration returns the booked hours, or ErrInvalidTimeRange when
// endHour is not after startHour. A zero duration is never returned
// as valid.
func Duration(startHour, endHour int) (int, error) {
	if endHour <= startHour {
		return 0, ErrInvalidTimeRange
	}
	return endHour - startHour, nil
}

// Cost computes the price of a slot in FCFA: hourlyRate times the
// booked hours. Invalid ranges cost zero and report the error so the
// booking action can be disabled instead of showing a negative price.
func Cost(startHour, endHour int, hourlyRate float64) (float64, error) {
	d, err := Duration(startHour, endHour)
	if err != nil {
		return 0, err
	}
	return hourlyRate * float64(d), nil
}

// CanSubmit gates the booking action: both hours picked, a valid range,
// and the quota check (hours remaining on the subscription) passed.
// hasQuota comes from the usage tracker, not from this package.
func CanSubmit(startHour, endHour int, hasQuota bool) bool {
	if startHour == 0 || endHour == 0 {
		return false
	}
	if endHour <= startHour {
		return false
	}
	return hasQuota
}
