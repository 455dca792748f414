// Package services contains the flag scan loop: it periodically walks the
// open packages, classifies each ledger flag and publishes an alert for
// every package needing operator attention.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tutoriacr/package-ledger/internal/ledger"
	librabbitmq "github.com/tutoriacr/package-ledger/internal/lib/rabbitmq"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// LedgerRepository defines the store methods the scanner needs.
type LedgerRepository interface {
	// ListOpenPackages returns every package not yet completed.
	ListOpenPackages(ctx context.Context) ([]*models.Package, error)
	// ListSessions returns every session of one package.
	ListSessions(ctx context.Context, packageID int) ([]*models.Session, error)
}

// Publisher publishes alert messages to the broker.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService runs the periodic flag scan.
type SchedulerService struct {
	repo      LedgerRepository
	publisher Publisher
	log       *slog.Logger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(repo LedgerRepository, publisher Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// routingKeyForFlag maps a ledger flag to the alerts exchange routing key.
// The empty string means no alert.
func routingKeyForFlag(flag ledger.Flag) string {
	switch flag {
	case ledger.FlagHoursCompletePaymentPending:
		return librabbitmq.RoutingKeyCollections
	case ledger.FlagPaidHoursPending:
		return librabbitmq.RoutingKeyBacklog
	case ledger.FlagFullyComplete:
		return librabbitmq.RoutingKeyCloseout
	default:
		return ""
	}
}

// Run scans immediately and then on every tick until the context ends.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.ScanOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ScanOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ScanOnce walks the open packages and publishes one alert per flagged
// package. Publish failures are logged and the scan continues; the next
// tick retries naturally.
func (s *SchedulerService) ScanOnce(ctx context.Context) {
	s.log.Info("starting ledger flag scan")
	packages, err := s.repo.ListOpenPackages(ctx)
	if err != nil {
		s.log.Error("failed to list open packages", sl.Err(err))
		return
	}
	if len(packages) == 0 {
		s.log.Info("no open packages found")
		return
	}

	var flagged int
	for _, pkg := range packages {
		sessions, err := s.repo.ListSessions(ctx, pkg.ID)
		if err != nil {
			s.log.Error("failed to list sessions", slog.Int("package_id", pkg.ID), sl.Err(err))
			continue
		}

		flag := ledger.ClassifyFlag(pkg, sessions)
		routingKey := routingKeyForFlag(flag)
		if routingKey == "" {
			continue
		}

		alert := models.FlagAlert{
			PackageID:        pkg.ID,
			StudentUID:       pkg.StudentUID,
			SubjectID:        pkg.SubjectID,
			Flag:             string(flag),
			PackageHours:     pkg.PackageHours,
			DeliveredHours:   ledger.DeliveredHours(sessions),
			RemainingBalance: ledger.RemainingBalance(pkg.TotalPrice, pkg.AmountPaid),
		}
		if err := s.publisher.Publish("alerts", routingKey, alert); err != nil {
			s.log.Error("failed to publish alert", slog.Int("package_id", pkg.ID), sl.Err(err))
			continue
		}
		flagged++
	}
	s.log.Info("ledger flag scan finished",
		slog.Int("open", len(packages)), slog.Int("flagged", flagged))
}
