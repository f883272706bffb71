// Package service defines interfaces for domain services. These are contracts
// for technical capabilities the application layer needs, implemented by the infrastructure layer.
package service

// PasswordHasher defines the contract for hashing and verifying passwords.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash, returning true on match.
	Check(password, hash string) bool
}
