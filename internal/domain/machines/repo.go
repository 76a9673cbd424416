package machines

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const cols = `id, name, category, hourly_rate, status, requires_training, features, created_at, updated_at`

func scanMachine(row pgx.Row) (*Machine, error) {
	var m Machine
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Category,
		&m.HourlyRate,
		&m.Status,
		&m.RequiresTraining,
		&m.Features,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Machine, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cols+` FROM machines WHERE id = $1`, id)
	m, err := scanMachine(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repo) List(ctx context.Context) ([]Machine, error) {
	return r.list(ctx, `SELECT `+cols+` FROM machines ORDER BY category, name`)
}

// ListBookable returns only machines selectable for booking.
func (r *Repo) ListBookable(ctx context.Context) ([]Machine, error) {
	return r.list(ctx, `SELECT `+cols+` FROM machines
		WHERE status IN ('operational','available')
		ORDER BY category, name`)
}

func (r *Repo) list(ctx context.Context, q string) ([]Machine, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// featuresParam guards the features TEXT[] NOT NULL column: pgx encodes
// a nil slice as SQL NULL.
func featuresParam(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}

func (r *Repo) Create(ctx context.Context, m Machine) (*Machine, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO machines (id, name, category, hourly_rate, status, requires_training, features)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING
		RETURNING `+cols,
		m.ID, m.Name, string(m.Category), m.HourlyRate, string(m.Status), m.RequiresTraining, featuresParam(m.Features))
	created, err := scanMachine(row)
	if err == pgx.ErrNoRows {
		// already exists, return the current row
		return r.GetByID(ctx, m.ID)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetRate updates the hourly rate. Existing reservations keep the
// total cost computed at creation time.
func (r *Repo) SetRate(ctx context.Context, id string, rate float64) (*Machine, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE machines SET hourly_rate=$2, updated_at=NOW() WHERE id=$1
		RETURNING `+cols, id, rate)
	return scanMachine(row)
}

func (r *Repo) SetStatus(ctx context.Context, id string, status Status) (*Machine, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE machines SET status=$2, updated_at=NOW() WHERE id=$1
		RETURNING `+cols, id, string(status))
	return scanMachine(row)
}

func (r *Repo) Rename(ctx context.Context, id, name string) (*Machine, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE machines SET name=$2, updated_at=NOW() WHERE id=$1
		RETURNING `+cols, id, name)
	return scanMachine(row)
}
