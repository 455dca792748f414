// Package password implements safe password hashing and verification.
//
// GetHash creates a bcrypt hash for storage; CompareHash checks a stored
// hash against a submitted password.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash takes a user's password and returns its bcrypt hash.
func GetHash(password string) (string, error) {
	const op = "auth.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash compares a bcrypt hash with a submitted password.
// Returns nil when the password matches the hash.
func CompareHash(originalHash, externalPassword string) error {
	const op = "auth.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
