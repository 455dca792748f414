// Package models contains the domain structures for tutoring packages,
// their sessions and payments, plus helper types for data arriving from
// external sources (JSON requests).
package models

import "time"

// Package lifecycle statuses.
const (
	PackageStatusPending   = "pending"
	PackageStatusMatched   = "matched"
	PackageStatusCompleted = "completed"
)

// Payment statuses derived from amount_paid against total_price.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Tutoring preferences carried through for display only.
const (
	PreferenceIndividual = "individual"
	PreferenceGroup      = "group"
)

// Package is the main model of a purchased instructional package,
// used by the business logic and the storage layer.
// AmountPaid only ever grows through payment registration; PaymentStatus
// is recomputed server-side on every payment and never trusted as stale input.
type Package struct {
	ID            int       `json:"id"`                  // Package identifier
	StudentUID    string    `json:"student_uid"`         // UID of the student who owns the package
	SubjectID     string    `json:"subject_id"`          // Opaque subject reference
	PackageHours  float64   `json:"package_hours"`       // Contracted instructional hours, fractional allowed
	Preference    string    `json:"preference"`          // individual or group
	TotalPrice    int       `json:"total_price"`         // Contracted total in the smallest currency unit
	AmountPaid    int       `json:"amount_paid"`         // Cumulative amount received to date
	PaymentStatus string    `json:"payment_status"`      // pending, partial or paid
	Status        string    `json:"status"`              // pending, matched or completed
	TutorUID      *string   `json:"tutor_uid,omitempty"` // Assigned tutor, nil until matched
	CreatedAt     time.Time `json:"created_at"`          // Creation timestamp
}

// DummyPackage receives package data from a JSON request before it is
// converted into a Package.
type DummyPackage struct {
	SubjectID    string  `json:"subject_id" validate:"required"`                      // Subject reference
	PackageHours float64 `json:"package_hours" validate:"required,gt=0"`              // Contracted hours (>0)
	Preference   string  `json:"preference" validate:"required,oneof=individual group"` // individual or group
	TotalPrice   int     `json:"total_price" validate:"required,gt=0"`                // Contracted price (>0)
}

// PackageSummary bundles every derived ledger metric for one package.
// All of it is computed at query time from the package row and its sessions,
// never stored redundantly.
type PackageSummary struct {
	PackageID        int     `json:"package_id"`
	PackageHours     float64 `json:"package_hours"`
	DeliveredHours   float64 `json:"delivered_hours"`
	ScheduledHours   float64 `json:"scheduled_hours"`
	ProgressPercent  float64 `json:"progress_percent"`
	TotalPrice       int     `json:"total_price"`
	AmountPaid       int     `json:"amount_paid"`
	RemainingBalance int     `json:"remaining_balance"` // clamped to 0 for display
	PaymentStatus    string  `json:"payment_status"`
	Status           string  `json:"status"`
	Flag             string  `json:"flag"`
}
