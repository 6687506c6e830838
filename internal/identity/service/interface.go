// Package service provides identity-related services for credential hashing and
// API token management.
package service

// PasswordService handles administrator credential hashing and verification.
// Credentials are hashed with a slow, salted algorithm (Argon2id); plaintext
// equality is never used.
type PasswordService interface {
	// HashPassword hashes a plaintext password for storage.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword verifies a plaintext password against its stored hash.
	ComparePassword(plainPassword, hashedPassword string) bool
}

// TokenService handles opaque API token generation and hashing.
type TokenService interface {
	// GenerateToken creates a cryptographically secure random token. Returns
	// the plain token and its SHA-256 hash; only the hash is ever stored.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for lookup.
	HashToken(plainToken string) string
}
