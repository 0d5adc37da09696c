package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmrathi94/VivahSetu/pkg/config"
)

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "no-reply@example.com",
	}
}

func TestSMTPMailerSendsPayload(t *testing.T) {
	m, err := NewSMTP(testSMTPConfig())
	require.NoError(t, err)

	var gotTo []string
	var gotPayload []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "no-reply@example.com", from)
		gotTo = to
		gotPayload = msg
		return nil
	}

	err = m.Send(context.Background(), Message{
		To:      []string{"guest@example.com"},
		Subject: "RSVP reminder",
		Body:    "Please respond",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"guest@example.com"}, gotTo)
	assert.Contains(t, string(gotPayload), "Subject: RSVP reminder")
	assert.Contains(t, string(gotPayload), "Please respond")
}

func TestSMTPMailerRetriesTransientFailures(t *testing.T) {
	m, err := NewSMTP(testSMTPConfig())
	require.NoError(t, err)

	attempts := 0
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset")
		}
		return nil
	}

	err = m.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "x", Body: "y"})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestSMTPMailerRequiresRecipient(t *testing.T) {
	m, err := NewSMTP(testSMTPConfig())
	require.NoError(t, err)

	err = m.Send(context.Background(), Message{Subject: "x", Body: "y"})
	assert.Error(t, err)
}

func TestNewSMTPRejectsMissingHost(t *testing.T) {
	_, err := NewSMTP(config.SMTPConfig{From: "no-reply@example.com"})
	assert.Error(t, err)
}
