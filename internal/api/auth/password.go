package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the one-way credential hashing contract. Verify must
// report false for a malformed stored hash instead of failing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes credentials with bcrypt at the given cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	// bcrypt returns an error both for mismatches and for garbage input;
	// either way the credential does not verify.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
