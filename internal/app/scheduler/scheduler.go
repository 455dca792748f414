// Package scheduler wires the periodic ledger flag scan: storage, the
// RabbitMQ alert exchange and the scan loop.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/tutoriacr/package-ledger/internal/config"
	librabbitmq "github.com/tutoriacr/package-ledger/internal/lib/rabbitmq"
	"github.com/tutoriacr/package-ledger/internal/rabbitmq"
	schedulerservice "github.com/tutoriacr/package-ledger/internal/services/scheduler"
	"github.com/tutoriacr/package-ledger/internal/storage/repository"
)

// App represents the flag scheduler application.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	scanInterval     time.Duration
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

// channelPublisher adapts an AMQP channel to the scan loop's publisher.
type channelPublisher struct {
	ch *amqp.Channel
}

func (p *channelPublisher) Publish(exchange, routingKey string, message any) error {
	return librabbitmq.PublishMessage(p.ch, exchange, routingKey, message)
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New creates a new flag scheduler application.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnRetries, cfg.ConnRetryWait)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := librabbitmq.GetAlertQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	schedulerService := schedulerservice.NewSchedulerService(db, &channelPublisher{ch: ch}, logger)

	return &App{
		schedulerService: schedulerService,
		scanInterval:     cfg.ScanInterval,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run starts the scan loop and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.schedulerService.Run(ctx, a.scanInterval)

	<-ctx.Done()

	a.logger.Info("shutting down flag scheduler")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
