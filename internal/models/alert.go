package models

// FlagAlert is the message published by the flag scheduler for every open
// package whose ledger shows a delivery/payment mismatch. The sender turns
// it into an operator e-mail.
type FlagAlert struct {
	PackageID        int     `json:"package_id"`
	StudentUID       string  `json:"student_uid"`
	SubjectID        string  `json:"subject_id"`
	Flag             string  `json:"flag"`
	PackageHours     float64 `json:"package_hours"`
	DeliveredHours   float64 `json:"delivered_hours"`
	RemainingBalance int     `json:"remaining_balance"`
}
