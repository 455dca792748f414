// Package sender wires the alert sender: it consumes flag alerts from the
// RabbitMQ queues and mails them to the operator over SMTP.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/tutoriacr/package-ledger/internal/config"
	librabbitmq "github.com/tutoriacr/package-ledger/internal/lib/rabbitmq"
	"github.com/tutoriacr/package-ledger/internal/lib/smtp"
	"github.com/tutoriacr/package-ledger/internal/rabbitmq"
	senderservice "github.com/tutoriacr/package-ledger/internal/services/sender"
)

// App represents the alert sender application.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New creates a new alert sender application.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnRetries, cfg.ConnRetryWait)
	if err != nil {
		return nil, err
	}

	queues := librabbitmq.GetAlertQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(cfg, logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run starts one consumer per alert queue and blocks until the context is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	for _, queue := range librabbitmq.GetAlertQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.ch, queue.QueueName, a.senderService.SendFlagAlert); err != nil {
			a.logger.Error("failed to start consumer",
				slog.String("queue", queue.QueueName), slog.Any("err", err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("alert sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
