package summary

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

	"github.com/tutoriacr/package-ledger/internal/models"
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// MockService implements the summary.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, id int) (*models.PackageSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageSummary), args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful summary",
			url:  "/packages/7/summary",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, 7).Return(&models.PackageSummary{
					PackageID:        7,
					PackageHours:     8,
					DeliveredHours:   6.5,
					ScheduledHours:   1.5,
					ProgressPercent:  81.25,
					TotalPrice:       96000,
					AmountPaid:       96000,
					RemainingBalance: 0,
					PaymentStatus:    models.PaymentStatusPaid,
					Flag:             "none",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"progress_percent":81.25`,
		},
		{
			name: "package not found",
			url:  "/packages/99/summary",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, 99).Return(nil, ledgersvc.ErrPackageNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"package not found"`,
		},
		{
			name:           "malformed id",
			url:            "/packages/abc/summary",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name: "service failure",
			url:  "/packages/7/summary",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, 7).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not build summary"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimSuffix(strings.TrimPrefix(tt.url, "/packages/"), "/summary"))
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
