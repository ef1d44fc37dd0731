package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
)

func setupAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestPasswordAuthenticator(t *testing.T) {
	a := setupAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, " Alice@Example.com", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "alice@example.com", "correct horse", nil},
		{"case-insensitive email", "ALICE@example.com", "correct horse", nil},
		{"wrong password", "alice@example.com", "battery staple", ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "correct horse", ErrInvalidCredentials},
		{"malformed email", "not-an-email", "correct horse", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("authenticated %s, want %s", got.ID, user.ID)
			}
		})
	}

	t.Run("register rejections", func(t *testing.T) {
		if _, err := a.Register(ctx, "alice@example.com", "Again", "long enough"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
		if _, err := a.Register(ctx, "carol@example.com", "Carol", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
		if _, err := a.Register(ctx, "carol", "Carol", "long enough"); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := a.Lookup(ctx, user.ID)
		if err != nil || got.Email != user.Email {
			t.Errorf("Lookup = %v, %v", got, err)
		}
		if _, err := a.Lookup(ctx, "missing"); !errors.Is(err, ErrUnknownUser) {
			t.Errorf("expected ErrUnknownUser, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Issuer != "fintrack" {
		t.Errorf("unexpected claims %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
