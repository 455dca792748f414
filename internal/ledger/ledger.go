// Package ledger implements the pure accounting engine over a package and
// its sessions: hour aggregates, progress, balance, payment status and the
// operator-facing flag. Every function here is deterministic and free of
// side effects; all state lives in the arguments.
package ledger

import "github.com/tutoriacr/package-ledger/internal/models"

// Flag summarizes the delivery/payment mismatch of a package for operators.
type Flag string

const (
	// FlagNone means the package is progressing normally.
	FlagNone Flag = "none"
	// FlagHoursCompletePaymentPending means all hours were delivered but a
	// balance is still owed: a collections risk.
	FlagHoursCompletePaymentPending Flag = "hours_complete_payment_pending"
	// FlagPaidHoursPending means the package is fully paid but hours are
	// still pending: a scheduling backlog risk.
	FlagPaidHoursPending Flag = "paid_hours_pending"
	// FlagFullyComplete means hours and payment are both satisfied and the
	// package is ready to be closed.
	FlagFullyComplete Flag = "fully_complete"
)

// DeliveredHours sums duration over the sessions marked completed.
// Confirmed and cancelled sessions do not count. Returns 0 for no sessions.
func DeliveredHours(sessions []*models.Session) float64 {
	var total float64
	for _, s := range sessions {
		if s.Status == models.SessionStatusCompleted {
			total += float64(s.DurationMinutes) / 60
		}
	}
	return total
}

// ScheduledHours sums duration over all sessions regardless of status;
// cancelled sessions stay in this aggregate, it is the total ever booked.
func ScheduledHours(sessions []*models.Session) float64 {
	var total float64
	for _, s := range sessions {
		total += float64(s.DurationMinutes) / 60
	}
	return total
}

// ProgressPercent returns delivered progress against the contracted hours,
// capped at 100. A package with zero contracted hours has progress 0.
func ProgressPercent(packageHours, deliveredHours float64) float64 {
	if packageHours <= 0 {
		return 0
	}
	percent := deliveredHours / packageHours * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// RemainingBalance returns the raw signed balance. It goes negative under
// overpayment; callers clamp for display but the sign is needed for the
// flag computation.
func RemainingBalance(totalPrice, amountPaid int) int {
	return totalPrice - amountPaid
}

// DerivePaymentStatus classifies the payment state of a package. Any amount
// at or above the contracted price counts as paid, overpayment included.
func DerivePaymentStatus(totalPrice, amountPaid int) string {
	switch {
	case amountPaid >= totalPrice:
		return models.PaymentStatusPaid
	case amountPaid > 0:
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusPending
	}
}

// CompletionEligible reports whether the package may be closed: all
// contracted hours must have been delivered.
func CompletionEligible(pkg *models.Package, sessions []*models.Session) bool {
	return DeliveredHours(sessions) >= pkg.PackageHours
}

// ClassifyFlag evaluates the flag decision table, first match wins:
//
//  1. hours delivered, balance owed       -> FlagHoursCompletePaymentPending
//  2. fully paid, hours still pending     -> FlagPaidHoursPending
//  3. hours delivered and fully paid      -> FlagFullyComplete
//  4. otherwise                           -> FlagNone
func ClassifyFlag(pkg *models.Package, sessions []*models.Session) Flag {
	delivered := DeliveredHours(sessions)
	balance := RemainingBalance(pkg.TotalPrice, pkg.AmountPaid)

	switch {
	case delivered >= pkg.PackageHours && balance > 0:
		return FlagHoursCompletePaymentPending
	case balance <= 0 && delivered < pkg.PackageHours:
		return FlagPaidHoursPending
	case delivered >= pkg.PackageHours && balance <= 0:
		return FlagFullyComplete
	default:
		return FlagNone
	}
}

// Summarize computes the full derived view of a package for dashboards.
// The remaining balance is clamped at zero here; anything at or below zero
// is presented as fully paid.
func Summarize(pkg *models.Package, sessions []*models.Session) models.PackageSummary {
	delivered := DeliveredHours(sessions)
	balance := RemainingBalance(pkg.TotalPrice, pkg.AmountPaid)
	if balance < 0 {
		balance = 0
	}
	return models.PackageSummary{
		PackageID:        pkg.ID,
		PackageHours:     pkg.PackageHours,
		DeliveredHours:   delivered,
		ScheduledHours:   ScheduledHours(sessions),
		ProgressPercent:  ProgressPercent(pkg.PackageHours, delivered),
		TotalPrice:       pkg.TotalPrice,
		AmountPaid:       pkg.AmountPaid,
		RemainingBalance: balance,
		PaymentStatus:    DerivePaymentStatus(pkg.TotalPrice, pkg.AmountPaid),
		Status:           pkg.Status,
		Flag:             string(ClassifyFlag(pkg, sessions)),
	}
}
