package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pmrathi94/VivahSetu/pkg/config"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers messages. Services hold this interface so tests and
// SMTP-less environments can swap in LogMailer.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers over plain SMTP with exponential backoff on transient
// failures.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP constructs an SMTP-backed mailer.
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}, nil
}

// Send implements Mailer.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	payload := buildPayload(m.cfg.From, msg)

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.send(addr, auth, m.cfg.From, msg.To, payload); err != nil {
			return retry.RetryableError(fmt.Errorf("smtp send: %w", err))
		}
		return nil
	})
}

func buildPayload(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and when SMTP is not configured.
type LogMailer struct {
	logg *logger.Logger
}

// NewLog constructs a logging mailer.
func NewLog(logg *logger.Logger) *LogMailer {
	return &LogMailer{logg: logg}
}

// Send implements Mailer.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if m.logg != nil {
		m.logg.Info(ctx, fmt.Sprintf("mail (not sent) to=%s subject=%q", strings.Join(msg.To, ","), msg.Subject))
	}
	return nil
}
