package services

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoriacr/package-ledger/internal/config"
	"github.com/tutoriacr/package-ledger/internal/lib/smtp"
	"github.com/tutoriacr/package-ledger/internal/models"
)

type writeCloser struct{ bytes.Buffer }

func (*writeCloser) Close() error { return nil }

type clientMock struct {
	from string
	rcpt []string
	data writeCloser
}

func (c *clientMock) Mail(from string) error { c.from = from; return nil }
func (c *clientMock) Rcpt(to string) error   { c.rcpt = append(c.rcpt, to); return nil }
func (c *clientMock) Data() (io.WriteCloser, error) {
	return &c.data, nil
}
func (c *clientMock) Quit() error  { return nil }
func (c *clientMock) Close() error { return nil }

type transportMock struct {
	client *clientMock
}

func (t *transportMock) Connect() (smtp.Client, error) {
	return t.client, nil
}
func (t *transportMock) GetSMTPUser() string { return "ledger@example.com" }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSenderService_SendFlagAlert(t *testing.T) {
	client := &clientMock{}
	cfg := &config.Config{SMTP: config.SMTP{OperatorMail: "ops@example.com"}}
	svc := NewSenderService(cfg, newNoopLogger(), &transportMock{client: client})

	alert := models.FlagAlert{
		PackageID:        12,
		StudentUID:       "uid-12",
		SubjectID:        "math",
		Flag:             "hours_complete_payment_pending",
		PackageHours:     6,
		DeliveredHours:   6,
		RemainingBalance: 30000,
	}
	body, err := json.Marshal(alert)
	require.NoError(t, err)

	require.NoError(t, svc.SendFlagAlert(body))

	assert.Equal(t, "ledger@example.com", client.from)
	assert.Equal(t, []string{"ops@example.com"}, client.rcpt)
	sent := client.data.String()
	assert.Contains(t, sent, "Package 12")
	assert.Contains(t, sent, "payment outstanding")
	assert.Contains(t, sent, "Remaining balance: 30000")
}

func TestSenderService_SendFlagAlert_BadPayload(t *testing.T) {
	cfg := &config.Config{SMTP: config.SMTP{OperatorMail: "ops@example.com"}}
	svc := NewSenderService(cfg, newNoopLogger(), &transportMock{client: &clientMock{}})

	assert.Error(t, svc.SendFlagAlert([]byte("not-json")))
}
