// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// ListOptions carries pagination and an optional substring search for listing
// queries. Page is 1-based; a non-positive page or limit falls back to the
// repository defaults.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// List retrieves a page of accounts matched by name or email, plus the
	// total match count.
	List(ctx context.Context, opts ListOptions) ([]*entity.Account, int64, error)

	// CountByRole returns the number of accounts holding each role.
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)

	// Create persists a new account entity to the storage.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account permanently. Owned stores and ratings cascade
	// via the relational constraints.
	Delete(ctx context.Context, id uuid.UUID) error
}
