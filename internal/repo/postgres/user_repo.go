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

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

type UserRecord struct {
	ID        int64
	Name      string
	Username  string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserWithSanction is a listing row joined against the punishments table.
// Sanction fields are nil for users with no active punishment row.
type UserWithSanction struct {
	UserRecord
	SanctionStatus    *string
	SanctionExpiresAt *time.Time
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, tx pgx.Tx, userID int64) (UserRecord, error) {
	if tx == nil {
		return UserRecord{}, fmt.Errorf("transaction is required")
	}
	if userID <= 0 {
		return UserRecord{}, fmt.Errorf("invalid user id")
	}

	var user UserRecord
	err := tx.QueryRow(ctx, `
SELECT id, name, username, email, role, created_at, updated_at
FROM users
WHERE id = $1
`, userID).Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// List pages over regular users, optionally narrowed by punishment status.
// filter is one of: all, active, banned, warned, timeout.
func (r *UserRepo) List(ctx context.Context, filter, search string, offset, limit int) ([]UserWithSanction, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	where := `u.role = 'USER'`
	args := []interface{}{}

	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "all":
	case "active":
		where += ` AND p.id IS NULL`
	case "banned":
		where += ` AND p.status = 'BANNED'`
	case "warned":
		where += ` AND p.status = 'WARNED'`
	case "timeout":
		where += ` AND p.status = 'TIMEOUT'`
	default:
		return nil, 0, fmt.Errorf("invalid user filter %q", filter)
	}

	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		where += fmt.Sprintf(` AND u.username ILIKE $%d`, len(args))
	}

	var total int
	countQuery := `
SELECT COUNT(*)
FROM users u
LEFT JOIN punishments p ON p.user_id = u.id
WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
SELECT u.id, u.name, u.username, u.email, u.role, u.created_at, u.updated_at, p.status, p.expires_at
FROM users u
LEFT JOIN punishments p ON p.user_id = u.id
WHERE %s
ORDER BY u.created_at DESC, u.id DESC
LIMIT $%d OFFSET $%d
`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []UserWithSanction
	for rows.Next() {
		var u UserWithSanction
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Username,
			&u.Email,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.SanctionStatus,
			&u.SanctionExpiresAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, total, nil
}

func (r *UserRepo) ListAdmins(ctx context.Context, search string, offset, limit int) ([]UserRecord, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	where := `role = 'ADMIN'`
	args := []interface{}{}
	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		where += fmt.Sprintf(` AND username ILIKE $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admins: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
SELECT id, name, username, email, role, created_at, updated_at
FROM users
WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate admin rows: %w", err)
	}

	return admins, total, nil
}

func (r *UserRepo) GetAdminByID(ctx context.Context, userID int64) (UserRecord, error) {
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return UserRecord{}, fmt.Errorf("invalid user id")
	}

	var user UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, name, username, email, role, created_at, updated_at
FROM users
WHERE id = $1 AND role = 'ADMIN'
`, userID).Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("get admin by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) CreateAdmin(ctx context.Context, name, username, email, passwordHash string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (name, username, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'ADMIN', NOW(), NOW())
RETURNING id
`, strings.TrimSpace(name), strings.TrimSpace(username), strings.TrimSpace(email), passwordHash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create admin: %w", err)
	}

	return id, nil
}

func (r *UserRepo) UpdateAdmin(ctx context.Context, userID int64, name, username, email, passwordHash string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE users
SET
	name = COALESCE(NULLIF($2, ''), name),
	username = COALESCE(NULLIF($3, ''), username),
	email = COALESCE(NULLIF($4, ''), email),
	password_hash = COALESCE(NULLIF($5, ''), password_hash),
	updated_at = NOW()
WHERE id = $1 AND role = 'ADMIN'
`, userID, strings.TrimSpace(name), strings.TrimSpace(username), strings.TrimSpace(email), passwordHash); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	return nil
}

func (r *UserRepo) DeleteAdmin(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if _, err := r.pool.Exec(ctx, `
DELETE FROM users
WHERE id = $1 AND role = 'ADMIN'
`, userID); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	return nil
}
