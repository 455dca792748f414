// Package services contains the business logic of the package ledger:
// package lifecycle, session scheduling, payment registration and the
// cached ledger summaries. All derived metrics come from the pure engine
// in internal/ledger; this layer adds store access, caching and the
// typed failure semantics.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tutoriacr/package-ledger/internal/ledger"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// summaryTTL bounds how stale a cached summary can get; every mutation
// invalidates the key anyway.
const summaryTTL = 5 * time.Minute

// LedgerRepository defines the store methods the ledger service needs.
type LedgerRepository interface {
	// CreatePackage adds a new package and returns its ID.
	CreatePackage(ctx context.Context, pkg models.Package) (int, error)
	// ReadPackage returns a package by ID.
	ReadPackage(ctx context.Context, id int) (*models.Package, error)
	// RemovePackage deletes a package by ID and returns the number of deleted rows.
	RemovePackage(ctx context.Context, id int) (int, error)
	// ListPackages returns the packages of one student with pagination.
	ListPackages(ctx context.Context, studentUID string, limit, offset int) ([]*models.Package, error)
	// ListAllPackages returns every package with pagination.
	ListAllPackages(ctx context.Context, limit, offset int) ([]*models.Package, error)
	// UpdatePackageStatus sets the lifecycle status of a package.
	UpdatePackageStatus(ctx context.Context, id int, status string) (int, error)
	// AssignTutor sets the tutor of a package and moves it to matched.
	AssignTutor(ctx context.Context, id int, tutorUID string) (int, error)
	// CreateSession adds a new session and returns its ID.
	CreateSession(ctx context.Context, session models.Session) (int, error)
	// ReadSession returns a session by ID.
	ReadSession(ctx context.Context, id int) (*models.Session, error)
	// ListSessions returns every session of one package.
	ListSessions(ctx context.Context, packageID int) ([]*models.Session, error)
	// UpdateSessionStatus changes the status of a still-confirmed session.
	UpdateSessionStatus(ctx context.Context, id int, status string) (int, error)
	// RemoveSession deletes a session by ID and returns the number of deleted rows.
	RemoveSession(ctx context.Context, id int) (int, error)
	// RegisterPayment atomically increments amount_paid and records the payment row.
	RegisterPayment(ctx context.Context, payment models.Payment) (int, string, error)
	// ListPayments returns the payment history of a package.
	ListPayments(ctx context.Context, packageID int) ([]*models.Payment, error)
}

// Cache describes the methods for caching derived summaries.
type Cache interface {
	// Get tries to fetch a value from the cache by key.
	Get(key string, result any) (bool, error)
	// Set stores a value in the cache with a lifetime.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate removes a value from the cache by key.
	Invalidate(key string) error
}

// LedgerService implements the package ledger business logic.
type LedgerService struct {
	repo  LedgerRepository
	cache Cache
	log   *slog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo LedgerRepository, cache Cache, log *slog.Logger) *LedgerService {
	return &LedgerService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func summaryKey(packageID int) string {
	return fmt.Sprintf("package:summary:%d", packageID)
}

func (s *LedgerService) invalidateSummary(packageID int) {
	key := summaryKey(packageID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("key", key), sl.Err(err))
	}
}

// CreatePackage creates a new package for a student. The package starts in
// the pending status with nothing paid.
func (s *LedgerService) CreatePackage(ctx context.Context, studentUID string, req models.DummyPackage) (int, error) {
	pkg := models.Package{
		StudentUID:    studentUID,
		SubjectID:     req.SubjectID,
		PackageHours:  req.PackageHours,
		Preference:    req.Preference,
		TotalPrice:    req.TotalPrice,
		AmountPaid:    0,
		PaymentStatus: ledger.DerivePaymentStatus(req.TotalPrice, 0),
		Status:        models.PackageStatusPending,
	}

	id, err := s.repo.CreatePackage(ctx, pkg)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new package", slog.Int("id", id), slog.String("student_uid", studentUID))
	return id, nil
}

// ReadPackage returns a package by ID.
func (s *LedgerService) ReadPackage(ctx context.Context, id int) (*models.Package, error) {
	pkg, err := s.repo.ReadPackage(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// RemovePackage deletes a package; its sessions and payments cascade at the
// store level. Irreversible.
func (s *LedgerService) RemovePackage(ctx context.Context, id int) error {
	count, err := s.repo.RemovePackage(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPackageNotFound
	}
	s.invalidateSummary(id)
	s.log.Info("removed package", slog.Int("id", id))
	return nil
}

// ListPackages returns packages depending on the caller's role: admins see
// everything, students only their own.
func (s *LedgerService) ListPackages(ctx context.Context, studentUID, role string, limit, offset int) ([]*models.Package, error) {
	if role == models.RoleAdmin {
		return s.repo.ListAllPackages(ctx, limit, offset)
	}
	return s.repo.ListPackages(ctx, studentUID, limit, offset)
}

// Summary returns the full derived ledger view of a package, cached.
func (s *LedgerService) Summary(ctx context.Context, id int) (*models.PackageSummary, error) {
	var cached models.PackageSummary
	key := summaryKey(id)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read summary cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	pkg, err := s.ReadPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListSessions(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := ledger.Summarize(pkg, sessions)
	if err := s.cache.Set(key, summary, summaryTTL); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", key), sl.Err(err))
	}
	return &summary, nil
}

// AssignTutor attaches a tutor to a package and moves it to matched.
func (s *LedgerService) AssignTutor(ctx context.Context, id int, tutorUID string) error {
	count, err := s.repo.AssignTutor(ctx, id, tutorUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPackageNotFound
	}
	s.invalidateSummary(id)
	s.log.Info("assigned tutor", slog.Int("package_id", id), slog.String("tutor_uid", tutorUID))
	return nil
}

// ScheduleSession appends a new confirmed session to a package. Tutor
// availability and double-booking are the scheduling backend's concern,
// not validated here.
func (s *LedgerService) ScheduleSession(ctx context.Context, packageID int, req models.DummySession) (int, error) {
	if req.DurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDuration, req.DurationMinutes)
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimestamp, req.ScheduledAt)
	}

	// existence check up front so a dangling package id fails typed
	if _, err := s.ReadPackage(ctx, packageID); err != nil {
		return 0, err
	}

	session := models.Session{
		PackageID:       packageID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          models.SessionStatusConfirmed,
		TutorUID:        req.TutorUID,
	}
	id, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return 0, err
	}

	s.invalidateSummary(packageID)
	s.log.Info("scheduled session", slog.Int("id", id), slog.Int("package_id", packageID))
	return id, nil
}

// SetSessionStatus moves a confirmed session to completed or cancelled.
// Both are terminal; changing a closed session fails with ErrSessionClosed.
func (s *LedgerService) SetSessionStatus(ctx context.Context, sessionID int, status string) error {
	if status != models.SessionStatusCompleted && status != models.SessionStatusCancelled {
		return fmt.Errorf("unsupported session status %q", status)
	}

	session, err := s.repo.ReadSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}

	// the guarded UPDATE only touches still-confirmed rows, so a race with
	// another operator resolves to ErrSessionClosed rather than a lost update
	count, err := s.repo.UpdateSessionStatus(ctx, sessionID, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrSessionClosed
	}

	s.invalidateSummary(session.PackageID)
	s.log.Info("session status changed",
		slog.Int("id", sessionID), slog.String("status", status))
	return nil
}

// RemoveSession deletes a session; the owning package's aggregates change
// on the next query. Irreversible.
func (s *LedgerService) RemoveSession(ctx context.Context, sessionID int) error {
	session, err := s.repo.ReadSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}

	count, err := s.repo.RemoveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrSessionNotFound
	}

	s.invalidateSummary(session.PackageID)
	s.log.Info("removed session", slog.Int("id", sessionID))
	return nil
}

// RegisterPayment adds a positive amount to a package's ledger. The store
// performs the increment and the payment status recompute atomically;
// overpayment is permitted and never clamped. Returns the updated
// cumulative amount and payment status.
func (s *LedgerService) RegisterPayment(ctx context.Context, packageID, amount int) (int, string, error) {
	if amount <= 0 {
		return 0, "", ErrInvalidAmount
	}

	payment := models.Payment{
		PackageID: packageID,
		Amount:    amount,
		Reference: uuid.New().String(),
		PaidAt:    time.Now().UTC(),
	}
	amountPaid, paymentStatus, err := s.repo.RegisterPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrPackageNotFound
		}
		return 0, "", err
	}

	s.invalidateSummary(packageID)
	s.log.Info("registered payment",
		slog.Int("package_id", packageID),
		slog.Int("amount", amount),
		slog.String("payment_status", paymentStatus))
	return amountPaid, paymentStatus, nil
}

// ListPayments returns the payment history of a package.
func (s *LedgerService) ListPayments(ctx context.Context, packageID int) ([]*models.Payment, error) {
	if _, err := s.ReadPackage(ctx, packageID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, packageID)
}

// CompletePackage closes a package. Hard precondition: every contracted
// hour must have been delivered, otherwise ErrHoursIncomplete.
func (s *LedgerService) CompletePackage(ctx context.Context, id int) error {
	pkg, err := s.ReadPackage(ctx, id)
	if err != nil {
		return err
	}
	sessions, err := s.repo.ListSessions(ctx, id)
	if err != nil {
		return err
	}
	if !ledger.CompletionEligible(pkg, sessions) {
		return ErrHoursIncomplete
	}

	count, err := s.repo.UpdatePackageStatus(ctx, id, models.PackageStatusCompleted)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPackageNotFound
	}

	s.invalidateSummary(id)
	s.log.Info("completed package", slog.Int("id", id))
	return nil
}
