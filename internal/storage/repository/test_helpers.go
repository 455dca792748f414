package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory contains helpers for seeding test data.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory creates a new test data factory.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser inserts a test user and returns its UID.
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, role string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, username, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, email, username, "hashedpassword", role)
	require.NoError(t, err)
	return uid
}

// CreatePackage inserts a test package and returns its ID.
func (f *TestDataFactory) CreatePackage(t *testing.T, studentUID, subjectID string,
	packageHours float64, preference string, totalPrice, amountPaid int, paymentStatus, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO packages
		(student_uid, subject_id, package_hours, preference, total_price, amount_paid, payment_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		studentUID, subjectID, packageHours, preference, totalPrice, amountPaid, paymentStatus, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSession inserts a test session and returns its ID.
func (f *TestDataFactory) CreateSession(t *testing.T, packageID int,
	scheduledAt time.Time, durationMinutes int, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO sessions
		(package_id, scheduled_at, duration_minutes, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		packageID, scheduledAt, durationMinutes, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestPackageData holds default seed values for one package.
type TestPackageData struct {
	SubjectID    string
	PackageHours float64
	Preference   string
	TotalPrice   int
}

// GetTestPackageData returns default package seed data.
func GetTestPackageData() TestPackageData {
	return TestPackageData{
		SubjectID:    "math-11",
		PackageHours: 8,
		Preference:   "individual",
		TotalPrice:   96000,
	}
}
