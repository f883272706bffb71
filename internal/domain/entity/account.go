// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Account field length limits shared by registration and admin creation.
const (
	AccountNameMinLength = 4
	AccountNameMaxLength = 60
)

// Account represents a registered identity on the platform. The role is fixed
// at registration; self-service profile updates never change it.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // The account's unique login email.
	Name         string    // The account's display name (4-60 characters).
	Role         Role      // One of the closed role set; immutable after registration.
	PasswordHash string    // The bcrypt hash of the account's password. Never serialized.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// ValidAccountName reports whether a display name satisfies the length rule.
// Lengths are counted in characters, not bytes.
func ValidAccountName(name string) bool {
	length := utf8.RuneCountInString(name)

	return length >= AccountNameMinLength && length <= AccountNameMaxLength
}
