package usecase

import (
	"context"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListAccountsInput carries pagination and search for the admin listing.
type ListAccountsInput struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// CreateAccountInput defines the data an admin supplies to create an account.
type CreateAccountInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

// UpdateAccountInput defines the admin-side partial update. Omitted fields
// are unchanged. Role is absent on purpose: it is fixed at registration and
// no update path may change it.
type UpdateAccountInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateProfileInput defines the self-service profile update. Password and
// role are not representable here; attempts to change them through this path
// are silently discarded by the delivery layer's binding.
type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// --- Output DTOs ---

// ListAccountsOutput returns one page of accounts plus the total match count.
type ListAccountsOutput struct {
	Accounts []*AccountPublic `json:"accounts"`
	Total    int64            `json:"total"`
}

// AccountStatsOutput returns the admin dashboard account counters.
type AccountStatsOutput struct {
	Total  int64                 `json:"total"`
	ByRole map[entity.Role]int64 `json:"by_role"`
}

// AccountUsecase defines the interface for account management operations.
// Listing, creation and deletion are admin-only; the capability gate lives in
// the routing layer, while ownership rules for the profile path live here.
type AccountUsecase interface {
	List(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*AccountPublic, error)
	Create(ctx context.Context, input *CreateAccountInput) (*AccountPublic, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*AccountPublic, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*AccountPublic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*AccountStatsOutput, error)
}
