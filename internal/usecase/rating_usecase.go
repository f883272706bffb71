package usecase

import (
	"context"
	"time"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListRatingsInput carries pagination and an optional comment substring
// search for the admin moderation listing.
type ListRatingsInput struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// CreateRatingInput defines the data required to rate a store for the first
// time. Repeat submissions on the same store must use update instead.
type CreateRatingInput struct {
	StoreID uuid.UUID `json:"store_id"     validate:"required"`
	Value   string    `json:"rating_value" validate:"required,oneof=1 2 3 4 5"`
	Comment string    `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// UpdateRatingInput defines the partial rating update. Omitted fields are
// unchanged.
type UpdateRatingInput struct {
	Value   *string `json:"rating_value,omitempty" validate:"omitempty,oneof=1 2 3 4 5"`
	Comment *string `json:"comment,omitempty"      validate:"omitempty,max=500"`
}

// --- Output DTOs ---

// ListRatingsOutput returns one page of ratings plus the total match count.
type ListRatingsOutput struct {
	Ratings []*RatingOutput `json:"ratings"`
	Total   int64           `json:"total"`
}

// RatingOutput is the API view of a rating.
type RatingOutput struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	StoreID   uuid.UUID          `json:"store_id"`
	Value     entity.RatingValue `json:"rating_value"`
	Comment   string             `json:"comment,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewRatingOutput maps a rating entity to its API view.
func NewRatingOutput(rating *entity.Rating) *RatingOutput {
	if rating == nil {
		return nil
	}

	return &RatingOutput{
		ID:        rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Value:     rating.Value,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// RatingUsecase defines the interface for rating mutations and listings.
// Creation is gated on the NORMAL_USER/SYSTEM_ADMIN capability; update and
// delete require ownership or admin role.
type RatingUsecase interface {
	Create(ctx context.Context, actor Actor, input *CreateRatingInput) (*RatingOutput, error)
	Update(ctx context.Context, actor Actor, ratingID uuid.UUID, input *UpdateRatingInput) (*RatingOutput, error)
	Delete(ctx context.Context, actor Actor, ratingID uuid.UUID) error
	List(ctx context.Context, input *ListRatingsInput) (*ListRatingsOutput, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*RatingOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RatingOutput, error)
}
