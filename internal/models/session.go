package models

import "time"

// Session statuses. A session starts as confirmed; completed and cancelled
// are terminal. Only completed sessions count toward delivered hours.
const (
	SessionStatusConfirmed = "confirmed"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session represents one scheduled instructional meeting belonging to a package.
type Session struct {
	ID              int       `json:"id"`                  // Session identifier
	PackageID       int       `json:"package_id"`          // Owning package
	ScheduledAt     time.Time `json:"scheduled_at"`        // Date and time of the meeting
	DurationMinutes int       `json:"duration_minutes"`    // Duration in minutes, always positive
	Status          string    `json:"status"`              // confirmed, completed or cancelled
	TutorUID        *string   `json:"tutor_uid,omitempty"` // Assigned tutor, nil means unassigned
}

// DummySession receives session data from a JSON request before it is
// converted into a Session. ScheduledAt arrives as a string so it can be
// validated and parsed manually.
type DummySession struct {
	ScheduledAt     string  `json:"scheduled_at" validate:"required"`          // RFC 3339 timestamp
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"` // Duration in minutes (>0)
	TutorUID        *string `json:"tutor_uid,omitempty" validate:"omitempty,uuid"`
}

// DummySessionStatus receives a session status change from a JSON request.
// Only the two terminal statuses are accepted from the outside.
type DummySessionStatus struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}
