package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := NewJWTManager("unit-test-secret", time.Hour)

	token, expiresAt, err := m.GenerateAccessToken(42, "ADMIN")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.Role != "ADMIN" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("unexpected expiry: got %v want %v", claims.ExpiresAt, expiresAt)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateAccessToken(42, "USER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager("unit-test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, _, err := m.GenerateAccessToken(42, "USER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	m.now = time.Now
	if _, err := m.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	m := NewJWTManager("unit-test-secret", time.Hour)

	for _, raw := range []string{"", "   ", "not.a.jwt"} {
		if _, err := m.ParseAccessToken(raw); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", raw, err)
		}
	}
}

func TestGenerateAccessTokenRequiresSecretAndUser(t *testing.T) {
	if _, _, err := NewJWTManager("", time.Hour).GenerateAccessToken(42, "USER"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, _, err := NewJWTManager("unit-test-secret", time.Hour).GenerateAccessToken(0, "USER"); err == nil {
		t.Fatalf("expected error for invalid user id")
	}
}
