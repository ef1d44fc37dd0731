package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a household member allowed to use the ledger.
// The ledger is single-tenant: every user sees the same accounts.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login identifier (unique).
	Email string

	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a User with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
