// Package access holds the platform's authorization rules: who may create
// which kind of resource, and who may mutate an existing one.
package access

import (
	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// CanMutate decides whether an actor may update or delete a resource owned by
// ownerID. System admins may always mutate; everyone else only their own
// resources. For stores the owner is the store's OwnerID, for ratings the
// rating's UserID.
func CanMutate(actorID uuid.UUID, actorRole entity.Role, ownerID uuid.UUID) bool {
	if actorRole == entity.RoleSystemAdmin {
		return true
	}

	return actorID == ownerID
}

// CanCreateStore is the capability gate for store creation. It is a pure role
// check with no resource reference.
func CanCreateStore(role entity.Role) bool {
	return role == entity.RoleStoreOwner || role == entity.RoleSystemAdmin
}

// CanCreateRating is the capability gate for rating creation.
func CanCreateRating(role entity.Role) bool {
	return role == entity.RoleNormalUser || role == entity.RoleSystemAdmin
}
