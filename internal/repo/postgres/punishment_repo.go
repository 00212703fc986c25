package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPunishmentNotFound = errors.New("punishment not found")

// PunishmentRepo manages the single sanction row per user. The schema keeps
// UNIQUE(user_id), so Upsert can never produce a second row for the same
// user.
type PunishmentRepo struct {
	pool *pgxpool.Pool
}

type PunishmentRecord struct {
	ID        int64
	UserID    int64
	Status    string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPunishmentRepo(pool *pgxpool.Pool) *PunishmentRepo {
	return &PunishmentRepo{pool: pool}
}

func (r *PunishmentRepo) GetByUserID(ctx context.Context, tx pgx.Tx, userID int64) (PunishmentRecord, error) {
	if tx == nil {
		return PunishmentRecord{}, fmt.Errorf("transaction is required")
	}
	if userID <= 0 {
		return PunishmentRecord{}, fmt.Errorf("invalid user id")
	}

	var rec PunishmentRecord
	err := tx.QueryRow(ctx, `
SELECT id, user_id, status, expires_at, created_at, updated_at
FROM punishments
WHERE user_id = $1
`, userID).Scan(&rec.ID, &rec.UserID, &rec.Status, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PunishmentRecord{}, ErrPunishmentNotFound
		}
		return PunishmentRecord{}, fmt.Errorf("get punishment by user id: %w", err)
	}

	return rec, nil
}

// Upsert creates the sanction row or overwrites status and expiry in place.
// No history is kept: re-sanctioning a user always resets the window.
func (r *PunishmentRepo) Upsert(ctx context.Context, tx pgx.Tx, userID int64, status string, expiresAt time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if userID <= 0 || status == "" {
		return fmt.Errorf("invalid punishment payload")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO punishments (user_id, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	status = EXCLUDED.status,
	expires_at = EXCLUDED.expires_at,
	updated_at = NOW()
`, userID, status, expiresAt); err != nil {
		return fmt.Errorf("upsert punishment: %w", err)
	}

	return nil
}

func (r *PunishmentRepo) DeleteByUserID(ctx context.Context, tx pgx.Tx, userID int64) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM punishments
WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("delete punishment: %w", err)
	}

	return nil
}

// GetActiveByUserID is the read used by the punishment gate; it runs outside
// any transaction. Expiry is not filtered here: callers compare expires_at
// against the current time themselves, matching the lazy-expiry contract.
func (r *PunishmentRepo) GetActiveByUserID(ctx context.Context, userID int64) (PunishmentRecord, error) {
	if r.pool == nil {
		return PunishmentRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return PunishmentRecord{}, fmt.Errorf("invalid user id")
	}

	var rec PunishmentRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, status, expires_at, created_at, updated_at
FROM punishments
WHERE user_id = $1
`, userID).Scan(&rec.ID, &rec.UserID, &rec.Status, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PunishmentRecord{}, ErrPunishmentNotFound
		}
		return PunishmentRecord{}, fmt.Errorf("get active punishment: %w", err)
	}

	return rec, nil
}
