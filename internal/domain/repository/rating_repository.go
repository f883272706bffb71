package repository

import (
	"context"
	"errors"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific rating persistence errors.
var (
	// ErrRatingNotFound is returned when a rating is not found.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrDuplicateRating is returned when the (user, store) unique constraint
	// rejects an insert.
	ErrDuplicateRating = errors.New("rating already exists for this user and store")
)

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// FindByID retrieves a single rating by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)

	// FindByUserAndStore retrieves the rating one user gave one store, or
	// ErrRatingNotFound when the pair has no rating yet.
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)

	// FindByStore retrieves every rating for a store, newest first. A store
	// with no ratings yields an empty slice, not an error.
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)

	// FindByUser retrieves every rating submitted by a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error)

	// FindAll retrieves every rating on the platform for platform-wide
	// aggregation.
	FindAll(ctx context.Context) ([]*entity.Rating, error)

	// List retrieves a page of ratings matched by comment substring, plus
	// the total match count. Backs the admin moderation listing.
	List(ctx context.Context, opts ListOptions) ([]*entity.Rating, int64, error)

	// Create persists a new rating entity to the storage. The composite
	// unique index on (user_id, store_id) backs the service-level uniqueness
	// check; violations surface as ErrDuplicateRating.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update modifies an existing rating entity in the storage.
	Update(ctx context.Context, rating *entity.Rating) error

	// Delete removes a rating permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
