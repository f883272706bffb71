package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListStoresInput carries pagination and search for the store listing.
type ListStoresInput struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// CreateStoreInput defines the data required to create a store. The actor
// becomes the owner.
type CreateStoreInput struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
}

// UpdateStoreInput defines the partial store update. Omitted fields are
// unchanged.
type UpdateStoreInput struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// --- Output DTOs ---

// StoreWithStats is a store plus the display aggregates attached to read
// responses. AverageRating is rounded to one decimal place at this boundary.
type StoreWithStats struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	OwnerID       uuid.UUID `json:"owner_id"`
	OwnerName     string    `json:"owner_name,omitempty"`
	TotalRatings  int       `json:"total_ratings"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListStoresOutput returns one page of stores plus the total match count.
type ListStoresOutput struct {
	Stores []*StoreWithStats `json:"stores"`
	Total  int64             `json:"total"`
}

// StoreDirectoryStatsOutput returns the admin dashboard store counters.
// AverageRating is the platform-wide mean rounded to two decimal places.
type StoreDirectoryStatsOutput struct {
	Total         int64   `json:"total"`
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
}

// StoreUsecase defines the interface for store directory operations.
type StoreUsecase interface {
	List(ctx context.Context, input *ListStoresInput) (*ListStoresOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*StoreWithStats, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*StoreWithStats, error)
	Create(ctx context.Context, actor Actor, input *CreateStoreInput) (*StoreWithStats, error)
	Update(ctx context.Context, actor Actor, storeID uuid.UUID, input *UpdateStoreInput) (*StoreWithStats, error)
	Delete(ctx context.Context, actor Actor, storeID uuid.UUID) error
	DirectoryStats(ctx context.Context) (*StoreDirectoryStatsOutput, error)
	ShareQR(ctx context.Context, storeID uuid.UUID) ([]byte, error)
}
