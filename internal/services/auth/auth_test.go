package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutoriacr/package-ledger/internal/lib/jwt"
	"github.com/tutoriacr/package-ledger/internal/lib/password"
	"github.com/tutoriacr/package-ledger/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	users := new(UsersMock)
	maker := jwt.NewJWTMaker("test-secret", 15*time.Minute)
	svc := NewAuthService(users, maker)

	uid := uuid.New().String()
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "maria_v" &&
			u.Role == models.RoleStudent &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret-password"
	})).Return(uid, nil).Once()

	got, err := svc.Register(context.Background(), "maria@example.com", "maria_v", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, uid, got)
	users.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret-password")
	require.NoError(t, err)
	uid := uuid.New().String()
	stored := &models.User{
		UID:          uid,
		Username:     "maria_v",
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}

	tests := []struct {
		name       string
		password   string
		setupMocks func(m *UsersMock)
		wantErr    bool
	}{
		{
			name:     "valid credentials",
			password: "secret-password",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "maria_v").Return(stored, nil).Once()
			},
		},
		{
			name:     "wrong password",
			password: "wrong",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "maria_v").Return(stored, nil).Once()
			},
			wantErr: true,
		},
		{
			name:     "unknown user",
			password: "secret-password",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "maria_v").
					Return(nil, errors.New("no rows")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			maker := jwt.NewJWTMaker("test-secret", 15*time.Minute)
			svc := NewAuthService(users, maker)
			tt.setupMocks(users)

			token, role, err := svc.Login(context.Background(), "maria_v", tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RoleStudent, role)

			claims, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, "maria_v", claims.Username)
			assert.Equal(t, uid, claims.UserUID)
		})
	}
}
