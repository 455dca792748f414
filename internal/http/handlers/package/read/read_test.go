package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutoriacr/package-ledger/internal/models"
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// MockService implements the read.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) ReadPackage(ctx context.Context, id int) (*models.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful read",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("ReadPackage", mock.Anything, 7).Return(&models.Package{
					ID:           7,
					StudentUID:   "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
					SubjectID:    "math-11",
					PackageHours: 8,
					Preference:   models.PreferenceIndividual,
					TotalPrice:   96000,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subject_id":"math-11"`,
		},
		{
			name: "package not found",
			id:   "99",
			setupMock: func(m *MockService) {
				m.On("ReadPackage", mock.Anything, 99).Return(nil, ledgersvc.ErrPackageNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"package not found"`,
		},
		{
			name:           "malformed id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/packages/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
