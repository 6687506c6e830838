package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using Argon2id with the
// interactive policy, appropriate for human login credentials.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with a valid built-in policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}

// HashPassword hashes a plaintext password using Argon2id.
func (p *passwordService) HashPassword(plainPassword string) (string, error) {
	hashedPassword, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

// ComparePassword performs a constant-time verification of a plaintext
// password against its Argon2id hash.
func (p *passwordService) ComparePassword(plainPassword, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}
