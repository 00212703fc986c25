package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReplyNotFound = errors.New("reply not found")

type ReplyRepo struct {
	pool *pgxpool.Pool
}

type ReplyRecord struct {
	ID          int64
	QuestionID  int64
	OwnerUserID int64
	Content     string
	CreatedAt   time.Time
}

func NewReplyRepo(pool *pgxpool.Pool) *ReplyRepo {
	return &ReplyRepo{pool: pool}
}

func (r *ReplyRepo) GetByID(ctx context.Context, tx pgx.Tx, replyID int64) (ReplyRecord, error) {
	if tx == nil {
		return ReplyRecord{}, fmt.Errorf("transaction is required")
	}
	if replyID <= 0 {
		return ReplyRecord{}, fmt.Errorf("invalid reply id")
	}

	var rec ReplyRecord
	err := tx.QueryRow(ctx, `
SELECT id, question_id, owner_user_id, content, created_at
FROM replies
WHERE id = $1
`, replyID).Scan(&rec.ID, &rec.QuestionID, &rec.OwnerUserID, &rec.Content, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReplyRecord{}, ErrReplyNotFound
		}
		return ReplyRecord{}, fmt.Errorf("get reply by id: %w", err)
	}

	return rec, nil
}

func (r *ReplyRepo) GetOwnerID(ctx context.Context, replyID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if replyID <= 0 {
		return 0, fmt.Errorf("invalid reply id")
	}

	var ownerID int64
	err := r.pool.QueryRow(ctx, `
SELECT owner_user_id
FROM replies
WHERE id = $1
`, replyID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrReplyNotFound
		}
		return 0, fmt.Errorf("get reply owner: %w", err)
	}

	return ownerID, nil
}
