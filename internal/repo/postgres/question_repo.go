package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepo struct {
	pool *pgxpool.Pool
}

type QuestionRecord struct {
	ID          int64
	OwnerUserID int64
	Content     string
	Anonymous   bool
	CreatedAt   time.Time
}

type QuestionFileRecord struct {
	ID        int64
	ObjectKey string
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

func (r *QuestionRepo) GetByID(ctx context.Context, tx pgx.Tx, questionID int64) (QuestionRecord, error) {
	if tx == nil {
		return QuestionRecord{}, fmt.Errorf("transaction is required")
	}
	if questionID <= 0 {
		return QuestionRecord{}, fmt.Errorf("invalid question id")
	}

	var q QuestionRecord
	err := tx.QueryRow(ctx, `
SELECT id, owner_user_id, content, anonymous, created_at
FROM questions
WHERE id = $1
`, questionID).Scan(&q.ID, &q.OwnerUserID, &q.Content, &q.Anonymous, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuestionRecord{}, ErrQuestionNotFound
		}
		return QuestionRecord{}, fmt.Errorf("get question by id: %w", err)
	}

	return q, nil
}

func (r *QuestionRepo) ListFiles(ctx context.Context, tx pgx.Tx, questionID int64) ([]QuestionFileRecord, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required")
	}
	if questionID <= 0 {
		return nil, fmt.Errorf("invalid question id")
	}

	rows, err := tx.Query(ctx, `
SELECT id, object_key
FROM question_files
WHERE question_id = $1
ORDER BY id ASC
`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list question files: %w", err)
	}
	defer rows.Close()

	var files []QuestionFileRecord
	for rows.Next() {
		var f QuestionFileRecord
		if err := rows.Scan(&f.ID, &f.ObjectKey); err != nil {
			return nil, fmt.Errorf("scan question file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question file rows: %w", err)
	}

	return files, nil
}

func (r *QuestionRepo) GetOwnerID(ctx context.Context, questionID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if questionID <= 0 {
		return 0, fmt.Errorf("invalid question id")
	}

	var ownerID int64
	err := r.pool.QueryRow(ctx, `
SELECT owner_user_id
FROM questions
WHERE id = $1
`, questionID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrQuestionNotFound
		}
		return 0, fmt.Errorf("get question owner: %w", err)
	}

	return ownerID, nil
}
