package service

import (
	"rately/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService defines the contract for issuing and validating access tokens.
// The routing layer resolves (actorID, actorRole) from a validated token; the
// services never see a raw credential.
type TokenService interface {
	// GenerateAccessToken creates a signed access token carrying the account
	// ID and role claims.
	GenerateAccessToken(accountID uuid.UUID, role entity.Role) (string, error)

	// ValidateAccessToken checks a token string and returns the parsed token.
	ValidateAccessToken(tokenString string) (*jwt.Token, error)
}
