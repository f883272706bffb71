// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of an operation. The delivery
// layer resolves it from a validated token; services trust it as-is.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}
