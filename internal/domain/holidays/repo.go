package holidays

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbodj/fablab-bot/internal/domain/schedule"
)

// Holiday is a closed date managed by the admin (public holidays,
// maintenance days). Dates are stored as "YYYY-MM-DD".
type Holiday struct {
	ID        int64
	Date      string
	Label     string
	CreatedAt time.Time
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Add(ctx context.Context, date, label string) (int64, error) {
	const q = `
INSERT INTO holidays (date, label) VALUES ($1,$2)
ON CONFLICT (date) DO UPDATE SET label=EXCLUDED.label
RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, q, date, label).Scan(&id)
	return id, err
}

func (r *Repo) Remove(ctx context.Context, date string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM holidays WHERE date=$1`, date)
	return err
}

func (r *Repo) List(ctx context.Context) ([]Holiday, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, date, label, created_at FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Label, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Set loads the holiday dates as the set the calendar consumes.
func (r *Repo) Set(ctx context.Context) (schedule.Holidays, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(list))
	for _, h := range list {
		dates = append(dates, h.Date)
	}
	return schedule.NewHolidays(dates...), nil
}
