package repository

import (
	"context"
	"errors"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindByOwner retrieves every store owned by the given account, newest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error)

	// List retrieves a page of stores matched by name or address, plus the
	// total match count.
	List(ctx context.Context, opts ListOptions) ([]*entity.Store, int64, error)

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)

	// Create persists a new store entity to the storage.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store entity in the storage.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store permanently. Its ratings cascade via the
	// relational constraints.
	Delete(ctx context.Context, id uuid.UUID) error
}
