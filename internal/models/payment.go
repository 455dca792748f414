package models

import "time"

// Payment is one registered payment against a package. Rows are kept as an
// audit trail; the package's amount_paid is incremented atomically in the
// same transaction that inserts the row.
type Payment struct {
	ID        int       `json:"id"`
	PackageID int       `json:"package_id"`
	Amount    int       `json:"amount"`
	Reference string    `json:"reference"` // uuid assigned at registration
	PaidAt    time.Time `json:"paid_at"`
}

// DummyPayment receives payment data from a JSON request.
type DummyPayment struct {
	Amount int `json:"amount" validate:"required,gt=0"` // Amount in the smallest currency unit (>0)
}
