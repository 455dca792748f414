package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// MockService implements the complete.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) CompletePackage(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCompleteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful completion",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("CompletePackage", mock.Anything, 7).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"completed_id":7`,
		},
		{
			name: "hours not delivered yet",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("CompletePackage", mock.Anything, 7).Return(ledgersvc.ErrHoursIncomplete)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"delivered hours below contracted hours"`,
		},
		{
			name: "package not found",
			id:   "99",
			setupMock: func(m *MockService) {
				m.On("CompletePackage", mock.Anything, 99).Return(ledgersvc.ErrPackageNotFound)
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
		{
			name: "service failure",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("CompletePackage", mock.Anything, 7).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not complete package"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/packages/"+tt.id+"/complete", nil)
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
