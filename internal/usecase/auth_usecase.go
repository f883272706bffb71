package usecase

import (
	"context"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role is optional; an empty role defaults to NORMAL_USER.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=NORMAL_USER STORE_OWNER"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordInput defines the data required to change a password.
// The current password must verify before the new one is accepted.
type UpdatePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the issued token and the account's public fields.
type AuthOutput struct {
	AccessToken string         `json:"access_token"`
	Account     *AccountPublic `json:"account"`
}

// AccountPublic is the credential-free view of an account returned by the API.
type AccountPublic struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  entity.Role `json:"role"`
}

// NewAccountPublic strips the credential hash from an account entity.
func NewAccountPublic(account *entity.Account) *AccountPublic {
	if account == nil {
		return nil
	}

	return &AccountPublic{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
	}
}

// AuthUsecase defines the interface for authentication-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	UpdatePassword(ctx context.Context, accountID uuid.UUID, input *UpdatePasswordInput) error
}
