package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct {
	pool *pgxpool.Pool
}

type ReportRecord struct {
	ID               int64
	ReportType       string
	ReportStatus     string
	ReportedPostID   *int64
	ReportedPostType *string
	ReporterID       int64
	ReportedUserID   int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(
	ctx context.Context,
	tx pgx.Tx,
	reporterUserID, reportedUserID int64,
	reportType string,
	reportedPostID *int64,
	reportedPostType *string,
) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}
	if reporterUserID <= 0 || reportedUserID <= 0 || reporterUserID == reportedUserID {
		return 0, fmt.Errorf("invalid report payload")
	}

	var id int64
	err := tx.QueryRow(ctx, `
INSERT INTO reports (
	report_type,
	report_status,
	reported_post_id,
	reported_post_type,
	reporter_user_id,
	reported_user_id,
	created_at,
	updated_at
) VALUES ($1, 'pending', $2, $3, $4, $5, NOW(), NOW())
RETURNING id
`, reportType, reportedPostID, reportedPostType, reporterUserID, reportedUserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}

	return id, nil
}

func (r *ReportRepo) GetByID(ctx context.Context, tx pgx.Tx, reportID int64) (ReportRecord, error) {
	if tx == nil {
		return ReportRecord{}, fmt.Errorf("transaction is required")
	}
	if reportID <= 0 {
		return ReportRecord{}, fmt.Errorf("invalid report id")
	}

	var rec ReportRecord
	err := tx.QueryRow(ctx, `
SELECT id, report_type, report_status, reported_post_id, reported_post_type, reporter_user_id, reported_user_id, created_at, updated_at
FROM reports
WHERE id = $1
`, reportID).Scan(
		&rec.ID,
		&rec.ReportType,
		&rec.ReportStatus,
		&rec.ReportedPostID,
		&rec.ReportedPostType,
		&rec.ReporterID,
		&rec.ReportedUserID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReportRecord{}, ErrReportNotFound
		}
		return ReportRecord{}, fmt.Errorf("get report by id: %w", err)
	}

	return rec, nil
}

func (r *ReportRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, reportID int64, status string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if reportID <= 0 || status == "" {
		return fmt.Errorf("invalid report status payload")
	}

	if _, err := tx.Exec(ctx, `
UPDATE reports
SET report_status = $2, updated_at = NOW()
WHERE id = $1
`, reportID, status); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}

	return nil
}

// List pages over reports, newest first. filter is one of: all, pending,
// resolved, rejected.
func (r *ReportRepo) List(ctx context.Context, filter string, offset, limit int) ([]ReportRecord, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	where := `TRUE`
	args := []interface{}{}

	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "all":
	case "pending":
		where = `report_status = 'pending'`
	case "resolved":
		where = `report_status = 'resolved'`
	case "rejected":
		where = `report_status = 'rejected'`
	default:
		return nil, 0, fmt.Errorf("invalid report filter %q", filter)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
SELECT id, report_type, report_status, reported_post_id, reported_post_type, reporter_user_id, reported_user_id, created_at, updated_at
FROM reports
WHERE %s
ORDER BY created_at DESC, updated_at DESC
LIMIT $%d OFFSET $%d
`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ReportType,
			&rec.ReportStatus,
			&rec.ReportedPostID,
			&rec.ReportedPostType,
			&rec.ReporterID,
			&rec.ReportedUserID,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, total, nil
}
