package admins

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
)

func TestCheckKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		given      string
		wantErr    bool
	}{
		{name: "match", configured: "s3cret", given: "s3cret", wantErr: false},
		{name: "mismatch", configured: "s3cret", given: "wrong", wantErr: true},
		{name: "empty given", configured: "s3cret", given: "", wantErr: true},
		{name: "unconfigured key always fails", configured: "", given: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&stubAdminStore{}, tc.configured)
			err := svc.CheckKey(tc.given)
			if tc.wantErr && !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestListUsersInvalidFilter(t *testing.T) {
	svc := NewService(&stubAdminStore{}, "s3cret")

	_, _, err := svc.ListUsers(context.Background(), "shadowbanned", "", 1, 10)
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestListUsersMapsSanctions(t *testing.T) {
	status := "BANNED"
	store := &stubAdminStore{
		users: []pgrepo.UserWithSanction{
			{UserRecord: pgrepo.UserRecord{ID: 1, Username: "alice"}},
			{UserRecord: pgrepo.UserRecord{ID: 2, Username: "bob"}, SanctionStatus: &status},
		},
		total: 2,
	}
	svc := NewService(store, "s3cret")

	items, totalPage, err := svc.ListUsers(context.Background(), "all", "", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totalPage != 1 {
		t.Fatalf("unexpected total pages: %d", totalPage)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected item count: %d", len(items))
	}
	if items[0].SanctionStatus != nil {
		t.Fatalf("alice must have no sanction")
	}
	if items[1].SanctionStatus == nil || string(*items[1].SanctionStatus) != "BANNED" {
		t.Fatalf("unexpected sanction for bob: %v", items[1].SanctionStatus)
	}
}

func TestAddAdminHashesPassword(t *testing.T) {
	store := &stubAdminStore{}
	svc := NewService(store, "s3cret")

	err := svc.AddAdmin(context.Background(), "s3cret", AdminInput{
		Name:     "Carol",
		Username: "carol",
		Email:    "carol@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.createdHash == "" {
		t.Fatalf("expected a stored password hash")
	}
	if store.createdHash == "hunter2" {
		t.Fatalf("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.createdHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAddAdminRequiresKey(t *testing.T) {
	svc := NewService(&stubAdminStore{}, "s3cret")

	err := svc.AddAdmin(context.Background(), "wrong", AdminInput{
		Name:     "Carol",
		Username: "carol",
		Email:    "carol@example.com",
		Password: "hunter2",
	})
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestAddAdminValidatesInput(t *testing.T) {
	svc := NewService(&stubAdminStore{}, "s3cret")

	err := svc.AddAdmin(context.Background(), "s3cret", AdminInput{Username: "carol"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateAdminUnknownAdmin(t *testing.T) {
	svc := NewService(&stubAdminStore{}, "s3cret")

	err := svc.UpdateAdmin(context.Background(), "s3cret", 42, AdminInput{Name: "X"})
	if !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestDeleteAdmin(t *testing.T) {
	store := &stubAdminStore{admins: map[int64]pgrepo.UserRecord{7: {ID: 7}}}
	svc := NewService(store, "s3cret")

	if err := svc.DeleteAdmin(context.Background(), "s3cret", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.deletedID != 7 {
		t.Fatalf("unexpected deleted id: %d", store.deletedID)
	}
}

type stubAdminStore struct {
	users       []pgrepo.UserWithSanction
	total       int
	admins      map[int64]pgrepo.UserRecord
	createdHash string
	deletedID   int64
}

func (s *stubAdminStore) List(_ context.Context, _, _ string, _, _ int) ([]pgrepo.UserWithSanction, int, error) {
	return s.users, s.total, nil
}

func (s *stubAdminStore) ListAdmins(_ context.Context, _ string, _, _ int) ([]pgrepo.UserRecord, int, error) {
	out := make([]pgrepo.UserRecord, 0, len(s.admins))
	for _, rec := range s.admins {
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (s *stubAdminStore) GetAdminByID(_ context.Context, userID int64) (pgrepo.UserRecord, error) {
	rec, ok := s.admins[userID]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return rec, nil
}

func (s *stubAdminStore) CreateAdmin(_ context.Context, _, _, _, passwordHash string) (int64, error) {
	s.createdHash = passwordHash
	return 1, nil
}

func (s *stubAdminStore) UpdateAdmin(_ context.Context, _ int64, _, _, _, _ string) error {
	return nil
}

func (s *stubAdminStore) DeleteAdmin(_ context.Context, userID int64) error {
	s.deletedID = userID
	return nil
}
