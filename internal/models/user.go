// Package models contains the domain model of a system user, including
// account data, the password hash and the creation date. The structure is
// used by the business logic and the storage layer.
package models

import "time"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User represents a registered user of the system.
type User struct {
	UID          string    // Unique user identifier
	Email        string    // E-mail address
	Username     string    // Username (unique)
	PasswordHash string    // bcrypt hash of the password
	Role         string    // admin or student
	CreatedAt    time.Time // Registration timestamp
}
