package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("subscriptions: not found")

type Repo struct{ db *pgxpool.Pool }

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

const subCols = `id,user_id,user_name,sub_type,max_hours,status,end_date,created_at,updated_at`

// scanSub reads a row into the raw shape and normalizes it, so stored
// rows go through the same ingestion boundary as API payloads. The
// sub_type column may still carry the legacy aliases on imported rows,
// hence the value feeds both type fields.
func scanSub(row pgx.Row) (*Subscription, error) {
	var (
		r                    Raw
		subType              string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.UserName,
		&subType,
		&r.MaxHoursPerMonth,
		&r.Status,
		&r.EndDate,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	r.SubscriptionType = subType
	r.Type = subType
	s := Normalize(r)
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
	return &s, nil
}

// GetActive returns the current approved subscription for a user, or
// nil when the user has none. The newest unexpired one wins.
func (r *Repo) GetActive(ctx context.Context, userID int64, now time.Time) (*Subscription, error) {
	const q = `SELECT ` + subCols + `
	           FROM subscriptions
	           WHERE user_id=$1 AND status='approved' AND end_date >= $2
	           ORDER BY end_date DESC
	           LIMIT 1`
	s, err := scanSub(r.db.QueryRow(ctx, q, userID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Grant creates or replaces the subscription for a user. Admin path:
// one current subscription per user, maxHours 0 keeps the type default.
func (r *Repo) Grant(ctx context.Context, userID int64, userName string, t Type, maxHours int, endDate time.Time) (*Subscription, error) {
	const q = `
INSERT INTO subscriptions (user_id, user_name, sub_type, max_hours, status, end_date)
VALUES ($1,$2,$3,$4,'approved',$5)
ON CONFLICT (user_id)
DO UPDATE SET user_name=EXCLUDED.user_name,
              sub_type=EXCLUDED.sub_type,
              max_hours=EXCLUDED.max_hours,
              status='approved',
              end_date=EXCLUDED.end_date,
              updated_at=NOW()
RETURNING ` + subCols
	return scanSub(r.db.QueryRow(ctx, q, userID, userName, string(t), maxHours, endDate))
}

// Renew pushes the end date forward and reactivates the subscription.
// Used by the payment callback after a renewal is paid.
func (r *Repo) Renew(ctx context.Context, userID int64, endDate time.Time) (*Subscription, error) {
	const q = `
UPDATE subscriptions
SET status='approved', end_date=$2, updated_at=NOW()
WHERE user_id=$1
RETURNING ` + subCols
	s, err := scanSub(r.db.QueryRow(ctx, q, userID, endDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *Repo) SetStatus(ctx context.Context, userID int64, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET status=$2, updated_at=NOW() WHERE user_id=$1`,
		userID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListByStatus(ctx context.Context, status Status) ([]Subscription, error) {
	const q = `SELECT ` + subCols + `
	           FROM subscriptions
	           WHERE status=$1
	           ORDER BY user_name`
	rows, err := r.db.Query(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		s, err := scanSub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
