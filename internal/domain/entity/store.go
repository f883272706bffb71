package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Store field length limits.
const (
	StoreNameMinLength    = 4
	StoreNameMaxLength    = 60
	StoreAddressMaxLength = 400
)

// Store represents a rateable store. Ownership is fixed at creation time and
// is never transferred.
type Store struct {
	ID        uuid.UUID // The unique identifier for the store.
	Name      string    // The store's display name (4-60 characters).
	Address   string    // The store's address (up to 400 characters).
	OwnerID   uuid.UUID // The account that owns this store.
	CreatedAt time.Time // Timestamp of when this store was created.
	UpdatedAt time.Time // Timestamp of the last modification to this store.
}

// ValidStoreName reports whether a store name satisfies the length rule.
// Lengths are counted in characters, not bytes.
func ValidStoreName(name string) bool {
	length := utf8.RuneCountInString(name)

	return length >= StoreNameMinLength && length <= StoreNameMaxLength
}

// ValidStoreAddress reports whether a store address satisfies the length rule.
// Lengths are counted in characters, not bytes.
func ValidStoreAddress(address string) bool {
	return utf8.RuneCountInString(address) <= StoreAddressMaxLength
}
