package reservations

// Ledger is the in-memory collection of reservations one session works
// with: the snapshot fetched at page load plus anything booked since.
// It is owned by a single session; no locking.
type Ledger struct {
	items  []*Reservation
	nextID int64
}

func NewLedger(existing ...*Reservation) *Ledger {
	l := &Ledger{nextID: 1}
	for _, r := range existing {
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
		l.items = append(l.items, r)
	}
	return l
}

// Add appends a reservation, assigning an ID when it has none.
func (l *Ledger) Add(r *Reservation) *Reservation {
	if r.ID == 0 {
		r.ID = l.nextID
		l.nextID++
	} else if r.ID >= l.nextID {
		l.nextID = r.ID + 1
	}
	l.items = append(l.items, r)
	return r
}

func (l *Ledger) Get(id int64) (*Reservation, bool) {
	for _, r := range l.items {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Cancel applies the confirmed → cancelled transition to the ledger
// entry. Unknown IDs report ErrNotFound; entries not in confirmed
// state are left untouched and report ErrInvalidStateTransition.
func (l *Ledger) Cancel(id int64) error {
	r, ok := l.Get(id)
	if !ok {
		return ErrNotFound
	}
	return r.Cancel()
}

// ListByUser returns the user's reservations in insertion order.
func (l *Ledger) ListByUser(userID int64) []*Reservation {
	var out []*Reservation
	for _, r := range l.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// ConfirmedHours sums the duration of confirmed reservations, the
// quantity charged against the monthly quota.
func (l *Ledger) ConfirmedHours(userID int64) float64 {
	var total float64
	for _, r := range l.items {
		if r.UserID == userID && r.Status == StatusConfirmed {
			total += r.Hours()
		}
	}
	return total
}
