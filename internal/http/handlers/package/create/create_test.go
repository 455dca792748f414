package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutoriacr/package-ledger/internal/http/middlewarectx"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// MockService implements the create.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) CreatePackage(ctx context.Context, studentUID string, req models.DummyPackage) (int, error) {
	args := m.Called(ctx, studentUID, req)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"subject_id":"math-11","package_hours":8,"preference":"individual","total_price":96000}`

	tests := []struct {
		name           string
		body           string
		studentUID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "successful creation",
			body:       validBody,
			studentUID: "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
			setupMock: func(m *MockService) {
				m.On("CreatePackage", mock.Anything, "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e", models.DummyPackage{
					SubjectID:    "math-11",
					PackageHours: 8,
					Preference:   "individual",
					TotalPrice:   96000,
				}).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":42`,
		},
		{
			name:           "malformed json",
			body:           `{"subject_id":`,
			studentUID:     "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "zero hours rejected",
			body:           `{"subject_id":"math-11","package_hours":0,"preference":"group","total_price":96000}`,
			studentUID:     "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PackageHours`,
		},
		{
			name:           "unknown preference rejected",
			body:           `{"subject_id":"math-11","package_hours":8,"preference":"trio","total_price":96000}`,
			studentUID:     "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Preference must be one of`,
		},
		{
			name:           "missing user uid",
			body:           validBody,
			studentUID:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:       "service failure",
			body:       validBody,
			studentUID: "4f2c6f38-8a64-4d09-9f10-0a6f5b7c1d2e",
			setupMock: func(m *MockService) {
				m.On("CreatePackage", mock.Anything, mock.Anything, mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create package"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/packages", strings.NewReader(tt.body))
			if tt.studentUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.studentUID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
