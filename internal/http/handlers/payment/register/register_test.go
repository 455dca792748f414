package register

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

// MockService implements the register.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) RegisterPayment(ctx context.Context, packageID, amount int) (int, string, error) {
	args := m.Called(ctx, packageID, amount)
	return args.Int(0), args.String(1), args.Error(2)
}

func TestRegisterPaymentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "partial payment registered",
			id:   "7",
			body: `{"amount":48000}`,
			setupMock: func(m *MockService) {
				m.On("RegisterPayment", mock.Anything, 7, 48000).
					Return(48000, "partial", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"payment_status":"partial"`,
		},
		{
			name: "closing payment flips status to paid",
			id:   "7",
			body: `{"amount":48000}`,
			setupMock: func(m *MockService) {
				m.On("RegisterPayment", mock.Anything, 7, 48000).
					Return(96000, "paid", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"payment_status":"paid"`,
		},
		{
			name:           "negative amount rejected by validation",
			id:             "7",
			body:           `{"amount":-500}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Amount must be greater than`,
		},
		{
			name: "package not found",
			id:   "99",
			body: `{"amount":1000}`,
			setupMock: func(m *MockService) {
				m.On("RegisterPayment", mock.Anything, 99, 1000).
					Return(0, "", ledgersvc.ErrPackageNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"package not found"`,
		},
		{
			name:           "malformed id",
			id:             "abc",
			body:           `{"amount":1000}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name: "service failure",
			id:   "7",
			body: `{"amount":1000}`,
			setupMock: func(m *MockService) {
				m.On("RegisterPayment", mock.Anything, 7, 1000).
					Return(0, "", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not register payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/packages/"+tt.id+"/payments", strings.NewReader(tt.body))
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
