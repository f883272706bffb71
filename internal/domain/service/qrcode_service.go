package service

import "github.com/google/uuid"

// QRCodeService defines the contract for generating QR codes.
type QRCodeService interface {
	// GenerateStoreQR renders a PNG QR code encoding the public page URL of
	// the given store.
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)
}
