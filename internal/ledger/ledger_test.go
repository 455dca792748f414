package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tutoriacr/package-ledger/internal/models"
)

func session(minutes int, status string) *models.Session {
	return &models.Session{
		ScheduledAt:     time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestDeliveredHours(t *testing.T) {
	tests := []struct {
		name     string
		sessions []*models.Session
		want     float64
	}{
		{
			name:     "no sessions",
			sessions: nil,
			want:     0,
		},
		{
			name: "only completed sessions count",
			sessions: []*models.Session{
				session(60, models.SessionStatusCompleted),
				session(90, models.SessionStatusConfirmed),
				session(120, models.SessionStatusCancelled),
			},
			want: 1,
		},
		{
			name: "fractional hours",
			sessions: []*models.Session{
				session(90, models.SessionStatusCompleted),
				session(45, models.SessionStatusCompleted),
			},
			want: 2.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DeliveredHours(tt.sessions), 1e-9)
		})
	}
}

func TestScheduledHours_CountsAllStatuses(t *testing.T) {
	sessions := []*models.Session{
		session(60, models.SessionStatusCompleted),
		session(60, models.SessionStatusConfirmed),
		session(60, models.SessionStatusCancelled),
	}
	assert.InDelta(t, 3.0, ScheduledHours(sessions), 1e-9)
	// delivered can never exceed scheduled, every completed session is booked
	assert.LessOrEqual(t, DeliveredHours(sessions), ScheduledHours(sessions))
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name         string
		packageHours float64
		delivered    float64
		want         float64
	}{
		{"zero contracted hours", 0, 5, 0},
		{"halfway", 6, 3, 50},
		{"exactly complete", 6, 6, 100},
		{"overdelivery capped", 6, 9, 100},
		{"nothing delivered", 6, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProgressPercent(tt.packageHours, tt.delivered), 1e-9)
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		totalPrice int
		amountPaid int
		want       string
	}{
		{"nothing paid", 60000, 0, models.PaymentStatusPending},
		{"partially paid", 60000, 30000, models.PaymentStatusPartial},
		{"exactly paid", 60000, 60000, models.PaymentStatusPaid},
		{"overpaid still paid", 60000, 70000, models.PaymentStatusPaid},
		{"zero price owes nothing", 0, 0, models.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(tt.totalPrice, tt.amountPaid))
		})
	}
}

func TestDerivePaymentStatus_ForwardOnly(t *testing.T) {
	// positive payments may only march the status forward:
	// pending -> partial -> paid
	order := map[string]int{
		models.PaymentStatusPending: 0,
		models.PaymentStatusPartial: 1,
		models.PaymentStatusPaid:    2,
	}
	paid := 0
	prev := DerivePaymentStatus(60000, paid)
	for _, amount := range []int{10000, 20000, 25000, 10000} {
		paid += amount
		next := DerivePaymentStatus(60000, paid)
		assert.GreaterOrEqual(t, order[next], order[prev])
		prev = next
	}
	assert.Equal(t, models.PaymentStatusPaid, prev)
}

func TestClassifyFlag(t *testing.T) {
	tests := []struct {
		name     string
		pkg      *models.Package
		sessions []*models.Session
		want     Flag
	}{
		{
			name: "hours done and fully paid",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 60000},
			sessions: []*models.Session{
				session(360, models.SessionStatusCompleted),
			},
			want: FlagFullyComplete,
		},
		{
			name: "hours done but balance owed",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 30000},
			sessions: []*models.Session{
				session(180, models.SessionStatusCompleted),
				session(180, models.SessionStatusCompleted),
			},
			want: FlagHoursCompletePaymentPending,
		},
		{
			name: "fully paid but hours pending",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 60000},
			sessions: []*models.Session{
				session(60, models.SessionStatusCompleted),
			},
			want: FlagPaidHoursPending,
		},
		{
			name: "progressing normally",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 30000},
			sessions: []*models.Session{
				session(60, models.SessionStatusCompleted),
			},
			want: FlagNone,
		},
		{
			name:     "free package with hours pending",
			pkg:      &models.Package{PackageHours: 6, TotalPrice: 0},
			sessions: nil,
			want:     FlagPaidHoursPending, // zero price means nothing owed
		},
		{
			name: "overpaid with hours pending",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 75000},
			sessions: []*models.Session{
				session(120, models.SessionStatusCompleted),
			},
			want: FlagPaidHoursPending,
		},
		{
			name: "exact boundary on both axes",
			pkg:  &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 60000},
			sessions: []*models.Session{
				session(180, models.SessionStatusCompleted),
				session(180, models.SessionStatusCompleted),
			},
			want: FlagFullyComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFlag(tt.pkg, tt.sessions)
			assert.Equal(t, tt.want, got)
			// pure function: same inputs, same result
			assert.Equal(t, got, ClassifyFlag(tt.pkg, tt.sessions))
		})
	}
}

func TestClassifyFlag_JustStartedWithPriceIsNone(t *testing.T) {
	pkg := &models.Package{PackageHours: 6, TotalPrice: 60000, AmountPaid: 10000}
	assert.Equal(t, FlagNone, ClassifyFlag(pkg, nil))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		pkg      *models.Package
		sessions []*models.Session
		want     models.PackageSummary
	}{
		{
			name: "fully complete package",
			pkg: &models.Package{
				ID: 7, PackageHours: 6, TotalPrice: 60000, AmountPaid: 60000,
				Status: models.PackageStatusMatched,
			},
			sessions: []*models.Session{
				session(360, models.SessionStatusCompleted),
			},
			want: models.PackageSummary{
				PackageID:        7,
				PackageHours:     6,
				DeliveredHours:   6,
				ScheduledHours:   6,
				ProgressPercent:  100,
				TotalPrice:       60000,
				AmountPaid:       60000,
				RemainingBalance: 0,
				PaymentStatus:    models.PaymentStatusPaid,
				Status:           models.PackageStatusMatched,
				Flag:             string(FlagFullyComplete),
			},
		},
		{
			name: "overpayment clamps displayed balance",
			pkg: &models.Package{
				ID: 8, PackageHours: 4, TotalPrice: 40000, AmountPaid: 45000,
				Status: models.PackageStatusMatched,
			},
			sessions: []*models.Session{
				session(60, models.SessionStatusCompleted),
				session(60, models.SessionStatusConfirmed),
			},
			want: models.PackageSummary{
				PackageID:        8,
				PackageHours:     4,
				DeliveredHours:   1,
				ScheduledHours:   2,
				ProgressPercent:  25,
				TotalPrice:       40000,
				AmountPaid:       45000,
				RemainingBalance: 0,
				PaymentStatus:    models.PaymentStatusPaid,
				Status:           models.PackageStatusMatched,
				Flag:             string(FlagPaidHoursPending),
			},
		},
		{
			name: "empty package",
			pkg: &models.Package{
				ID: 9, PackageHours: 0, TotalPrice: 0,
				Status: models.PackageStatusPending,
			},
			sessions: nil,
			// a zero-price package owes nothing, so the paid clause wins
			want: models.PackageSummary{
				PackageID:       9,
				ProgressPercent: 0,
				PaymentStatus:   models.PaymentStatusPaid,
				Status:          models.PackageStatusPending,
				Flag:            string(FlagFullyComplete),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.pkg, tt.sessions))
		})
	}
}

func TestCompletionEligible(t *testing.T) {
	pkg := &models.Package{PackageHours: 6}
	assert.False(t, CompletionEligible(pkg, []*models.Session{
		session(300, models.SessionStatusCompleted),
	}))
	assert.True(t, CompletionEligible(pkg, []*models.Session{
		session(300, models.SessionStatusCompleted),
		session(60, models.SessionStatusCompleted),
	}))
	// confirmed sessions do not make a package eligible
	assert.False(t, CompletionEligible(pkg, []*models.Session{
		session(360, models.SessionStatusConfirmed),
	}))
}
