package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutoriacr/package-ledger/internal/lib/jwt"
)

type ParserMock struct{ mock.Mock }

func (m *ParserMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	claims := &jwt.CustomClaims{Username: "maria_v", Role: "student", UserUID: "uid-1"}

	tests := []struct {
		name           string
		header         string
		setupMock      func(m *ParserMock)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:   "valid token passes with context values",
			header: "Bearer good-token",
			setupMock: func(m *ParserMock) {
				m.On("ValidateToken", mock.Anything, "good-token").Return(claims, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			header:         "",
			setupMock:      func(_ *ParserMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer bad-token",
			setupMock: func(m *ParserMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("expired")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(ParserMock)
			tt.setupMock(parser)

			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "maria_v", r.Context().Value(User))
				assert.Equal(t, "student", r.Context().Value(Role))
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(parser, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			parser.AssertExpectations(t)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		role           any
		expectedStatus int
		expectNext     bool
	}{
		{"admin passes", "admin", http.StatusOK, true},
		{"student rejected", "student", http.StatusForbidden, false},
		{"no role rejected", nil, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			w := httptest.NewRecorder()

			AdminOnlyMiddleware(newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}
