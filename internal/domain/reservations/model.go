package reservations

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidStateTransition = errors.New("reservations: invalid state transition")
	ErrInvalidTimeRange       = errors.New("reservations: end time must be after start time")
	ErrNotFound               = errors.New("reservations: not found")
)

// Reservation is one booked slot on a machine. TotalCost is computed
// once at creation from the machine's hourly rate and never touched
// again, even if the rate changes later. MachineName is a display copy
// frozen for the same reason.
type Reservation struct {
	ID          int64
	UserID      int64
	MachineID   string
	MachineName string
	StartTime   time.Time
	EndTime     time.Time
	Notes       string
	Status      Status
	TotalCost   float64 // FCFA, frozen at creation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New builds a reservation and freezes its cost. Reservations start
// life as pending or confirmed depending on whether the lab requires
// an admin sign-off for the machine.
func New(userID int64, machineID, machineName string, start, end time.Time, hourlyRate float64, status Status, notes string) (*Reservation, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, ErrInvalidStateTransition
	}
	hours := end.Sub(start).Hours()
	return &Reservation{
		UserID:      userID,
		MachineID:   machineID,
		MachineName: machineName,
		StartTime:   start,
		EndTime:     end,
		Notes:       notes,
		Status:      status,
		TotalCost:   hourlyRate * hours,
	}, nil
}

// Hours is the booked duration in whole-hour granularity bookings;
// fractional starts are still measured exactly.
func (r *Reservation) Hours() float64 {
	return r.EndTime.Sub(r.StartTime).Hours()
}

// Confirm moves a pending reservation to confirmed. Confirmed and
// cancelled reservations reject it.
func (r *Reservation) Confirm() error {
	if r.Status != StatusPending {
		return ErrInvalidStateTransition
	}
	r.Status = StatusConfirmed
	return nil
}

// Cancel transitions confirmed → cancelled. Cancelling a pending or
// already-cancelled reservation leaves it untouched and reports
// ErrInvalidStateTransition. There is no way back out of cancelled.
func (r *Reservation) Cancel() error {
	if r.Status != StatusConfirmed {
		return ErrInvalidStateTransition
	}
	r.Status = StatusCancelled
	return nil
}
