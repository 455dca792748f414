// Package services turns flag alert messages into operator e-mails.
package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"log/slog"

	"github.com/tutoriacr/package-ledger/internal/config"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/lib/smtp"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// SenderService consumes flag alerts and sends them by e-mail to the
// operator address from the configuration.
type SenderService struct {
	transport    smtp.TransportInterface
	operatorMail string
	log          *slog.Logger
}

// NewSenderService creates a new SenderService.
func NewSenderService(cfg *config.Config, log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport:    transport,
		operatorMail: cfg.OperatorMail,
		log:          log,
	}
}

// alert subject lines per flag
var subjects = map[string]string{
	"hours_complete_payment_pending": "Package hours delivered, payment outstanding",
	"paid_hours_pending":             "Package fully paid, hours still pending",
	"fully_complete":                 "Package ready to be closed",
}

// SendFlagAlert unmarshals one alert message and mails it to the operator.
func (s *SenderService) SendFlagAlert(body []byte) error {
	var alert models.FlagAlert
	if err := json.Unmarshal(body, &alert); err != nil {
		s.log.Error("failed to unmarshal alert", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject, ok := subjects[alert.Flag]
	if !ok {
		subject = "Package ledger alert"
	}

	bodyText := fmt.Sprintf(
		"Package %d (student %s, subject %s) needs attention.\n\n"+
			"Flag: %s\n"+
			"Delivered hours: %.2f of %.2f\n"+
			"Remaining balance: %d\n",
		alert.PackageID, alert.StudentUID, alert.SubjectID,
		alert.Flag, alert.DeliveredHours, alert.PackageHours, alert.RemainingBalance)

	return s.sendEmail([]string{s.operatorMail}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("alert email sent", slog.Any("to", to))
	return nil
}
