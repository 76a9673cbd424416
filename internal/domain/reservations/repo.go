package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ db *pgxpool.Pool }

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

const resCols = `id,user_id,machine_id,machine_name,start_time,end_time,notes,status,total_cost,created_at,updated_at`

func scanRes(row pgx.Row) (*Reservation, error) {
	var r Reservation
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.MachineID,
		&r.MachineName,
		&r.StartTime,
		&r.EndTime,
		&r.Notes,
		&r.Status,
		&r.TotalCost,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persists a reservation built by New. The stored total_cost is
// the frozen creation-time value.
func (r *Repo) Create(ctx context.Context, res *Reservation) (*Reservation, error) {
	const q = `
INSERT INTO reservations (user_id, machine_id, machine_name, start_time, end_time, notes, status, total_cost)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + resCols
	return scanRes(r.db.QueryRow(ctx, q,
		res.UserID, res.MachineID, res.MachineName,
		res.StartTime, res.EndTime, res.Notes, string(res.Status), res.TotalCost))
}

// Cancel applies confirmed → cancelled in SQL; the WHERE clause is the
// same guard Reservation.Cancel enforces in memory. Zero rows means
// the reservation was missing or not cancellable.
func (r *Repo) Cancel(ctx context.Context, id, userID int64) error {
	const q = `
UPDATE reservations
SET status='cancelled', updated_at=NOW()
WHERE id=$1 AND user_id=$2 AND status='confirmed'`
	tag, err := r.db.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		res, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res == nil || res.UserID != userID {
			return ErrNotFound
		}
		return ErrInvalidStateTransition
	}
	return nil
}

func (r *Repo) Confirm(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
UPDATE reservations SET status='confirmed', updated_at=NOW()
WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidStateTransition
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	res, err := scanRes(r.db.QueryRow(ctx, `SELECT `+resCols+` FROM reservations WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Reservation, error) {
	const q = `SELECT ` + resCols + ` FROM reservations WHERE user_id=$1 ORDER BY start_time DESC`
	return r.list(ctx, q, userID)
}

// ListByMonth returns every reservation starting within the month
// containing ref, for the admin export.
func (r *Repo) ListByMonth(ctx context.Context, ref time.Time) ([]Reservation, error) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0)
	const q = `SELECT ` + resCols + ` FROM reservations
	           WHERE start_time >= $1 AND start_time < $2
	           ORDER BY start_time`
	return r.list(ctx, q, from, to)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Reservation, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		res, err := scanRes(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// ConfirmedHoursInMonth sums the confirmed hours a user has booked in
// the month containing ref. This feeds the usage report.
func (r *Repo) ConfirmedHoursInMonth(ctx context.Context, userID int64, ref time.Time) (float64, error) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0)
	const q = `
SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 3600), 0)
FROM reservations
WHERE user_id=$1 AND status='confirmed' AND start_time >= $2 AND start_time < $3`
	var hours float64
	if err := r.db.QueryRow(ctx, q, userID, from, to).Scan(&hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// MachineBusy reports whether the machine already has a pending or
// confirmed reservation overlapping [start, end).
func (r *Repo) MachineBusy(ctx context.Context, machineID string, start, end time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM reservations
  WHERE machine_id=$1 AND status IN ('pending','confirmed')
    AND start_time < $3 AND end_time > $2
)`
	var busy bool
	if err := r.db.QueryRow(ctx, q, machineID, start, end).Scan(&busy); err != nil {
		return false, err
	}
	return busy, nil
}
