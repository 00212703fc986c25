package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ivankudzin/askbox/backend/internal/domain/enums"
	"github.com/ivankudzin/askbox/backend/internal/domain/model"
	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
)

const passwordHashCost = 10

var (
	ErrInvalidKey    = errors.New("invalid admin key")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrAdminNotFound = errors.New("admin not found")
	ErrValidation    = errors.New("validation error")
)

type UserStore interface {
	List(ctx context.Context, filter, search string, offset, limit int) ([]pgrepo.UserWithSanction, int, error)
	ListAdmins(ctx context.Context, search string, offset, limit int) ([]pgrepo.UserRecord, int, error)
	GetAdminByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
	CreateAdmin(ctx context.Context, name, username, email, passwordHash string) (int64, error)
	UpdateAdmin(ctx context.Context, userID int64, name, username, email, passwordHash string) error
	DeleteAdmin(ctx context.Context, userID int64) error
}

type Service struct {
	users    UserStore
	adminKey string
}

type UserItem struct {
	User              model.User
	SanctionStatus    *enums.PunishmentStatus
	SanctionExpiresAt *time.Time
}

type AdminInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

func NewService(users UserStore, adminKey string) *Service {
	return &Service{
		users:    users,
		adminKey: adminKey,
	}
}

// ListUsers pages over regular accounts for the admin dashboard. filter is
// one of all/active/banned/warned/timeout; active means "no punishment row".
func (s *Service) ListUsers(ctx context.Context, filter, search string, page, size int) ([]UserItem, int, error) {
	if s.users == nil {
		return nil, 0, fmt.Errorf("admin service dependencies are not configured")
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}

	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "all", "active", "banned", "warned", "timeout":
	default:
		return nil, 0, ErrInvalidFilter
	}

	records, total, err := s.users.List(ctx, filter, search, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	items := make([]UserItem, 0, len(records))
	for _, rec := range records {
		item := UserItem{User: recordToUser(rec.UserRecord)}
		if rec.SanctionStatus != nil {
			status := enums.PunishmentStatus(*rec.SanctionStatus)
			item.SanctionStatus = &status
			item.SanctionExpiresAt = rec.SanctionExpiresAt
		}
		items = append(items, item)
	}

	return items, totalPages(total, size), nil
}

func (s *Service) CheckKey(key string) error {
	if s.adminKey == "" || key != s.adminKey {
		return ErrInvalidKey
	}
	return nil
}

func (s *Service) ListAdmins(ctx context.Context, key, search string, page, size int) ([]model.User, int, error) {
	if err := s.CheckKey(key); err != nil {
		return nil, 0, err
	}
	if s.users == nil {
		return nil, 0, fmt.Errorf("admin service dependencies are not configured")
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}

	records, total, err := s.users.ListAdmins(ctx, search, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	admins := make([]model.User, 0, len(records))
	for _, rec := range records {
		admins = append(admins, recordToUser(rec))
	}

	return admins, totalPages(total, size), nil
}

func (s *Service) AddAdmin(ctx context.Context, key string, input AdminInput) error {
	if err := s.CheckKey(key); err != nil {
		return err
	}
	if s.users == nil {
		return fmt.Errorf("admin service dependencies are not configured")
	}
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := s.users.CreateAdmin(ctx, input.Name, input.Username, input.Email, string(hash)); err != nil {
		return err
	}
	return nil
}

func (s *Service) UpdateAdmin(ctx context.Context, key string, userID int64, input AdminInput) error {
	if err := s.CheckKey(key); err != nil {
		return err
	}
	if s.users == nil {
		return fmt.Errorf("admin service dependencies are not configured")
	}
	if userID <= 0 {
		return ErrValidation
	}

	if _, err := s.users.GetAdminByID(ctx, userID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	passwordHash := ""
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		passwordHash = string(hash)
	}

	return s.users.UpdateAdmin(ctx, userID, input.Name, input.Username, input.Email, passwordHash)
}

func (s *Service) DeleteAdmin(ctx context.Context, key string, userID int64) error {
	if err := s.CheckKey(key); err != nil {
		return err
	}
	if s.users == nil {
		return fmt.Errorf("admin service dependencies are not configured")
	}
	if userID <= 0 {
		return ErrValidation
	}

	if _, err := s.users.GetAdminByID(ctx, userID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	return s.users.DeleteAdmin(ctx, userID)
}

func recordToUser(rec pgrepo.UserRecord) model.User {
	return model.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Username:  rec.Username,
		Email:     rec.Email,
		Role:      enums.Role(rec.Role),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}
