package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const userCols = `id, telegram_id, username, first_name, last_name, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE telegram_id = $1`, tgID)
	u, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertFromTelegram refreshes the profile on each contact. An existing
// admin is never demoted by the default role.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, role Role) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name, role, status)
		VALUES ($1,$2,$3,$4,$5,'pending')
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			role       = CASE WHEN users.role = 'admin' THEN users.role ELSE EXCLUDED.role END,
			updated_at = now()
		RETURNING `+userCols,
		tg.ID, tg.Username, tg.FirstName, tg.LastName, role)
	return scanUser(row)
}

// Approve marks the user approved with the given role.
func (r *Repo) Approve(ctx context.Context, tgID int64, role Role) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET role=$2, status='approved', updated_at=now()
		WHERE telegram_id=$1
		RETURNING `+userCols, tgID, string(role))
	return scanUser(row)
}

func (r *Repo) ListByRole(ctx context.Context, role Role, status Status) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM users
		WHERE role=$1 AND status=$2
		ORDER BY first_name, last_name`, string(role), string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
