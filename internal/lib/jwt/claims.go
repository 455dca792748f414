// Package jwt implements generation and parsing of JWT tokens with custom
// claim fields.
//
// Maker defines the interface for creating and verifying tokens carrying
// the username, role and user UID; MakerImpl is the concrete implementation
// backed by a secret key and a TTL.
package jwt

import (
	"time"
)

// Maker describes the interface for generating and parsing JWT tokens.
type Maker interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(username, role, userUID string) (string, error)
	// ParseToken returns *CustomClaims with username, role and user UID.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker using a secret key and a token lifetime (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a new MakerImpl from a secret key and TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
