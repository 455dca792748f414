// Package services contains the business logic for users and authentication.
package services

import (
	"context"
	"errors"

	"github.com/tutoriacr/package-ledger/internal/lib/jwt"
	"github.com/tutoriacr/package-ledger/internal/lib/password"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// UserRepository describes the contract for user rows in the database.
type UserRepository interface {
	// RegisterUser saves a new user and returns the generated UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername returns a user by name or an error when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles registration, login and JWT validation.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register creates a new user with a hashed password and the default
// student role.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleStudent,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login checks the user's password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken checks a JWT and returns the claims stored inside.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
