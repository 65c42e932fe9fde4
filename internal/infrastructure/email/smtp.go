// Package email delivers plain-text mail through an SMTP relay.
package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrHeaderInjection is returned when a header value contains a line break
var ErrHeaderInjection = errors.New("email: header value contains a line break")

// Sender is implemented by SMTPSender and LogSender
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	DryRun() bool
}

// SMTPSender sends messages through the configured relay
type SMTPSender struct {
	cfg    config.EmailConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSMTPSender creates a sender for cfg
func NewSMTPSender(cfg config.EmailConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{cfg: cfg, logger: logger, now: time.Now}
}

// DryRun is always false for the relay
func (s *SMTPSender) DryRun() bool { return false }

// Send delivers one message. STARTTLS is used when the relay offers it and
// credentials are only sent when a username is configured.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := BuildMessage(s.cfg.From, to, subject, body, s.now())
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp relay: %w", err)
	}
	if s.cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.cfg.Timeout))
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open smtp session: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM rejected: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO rejected: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA rejected: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp message rejected: %w", err)
	}

	s.logger.Debug("Email sent", zap.String("to", to))
	return c.Quit()
}

// LogSender logs messages instead of sending them
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a dry-run sender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// DryRun is always true
func (s *LogSender) DryRun() bool { return true }

// Send logs the envelope and the body size
func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	if strings.ContainsAny(to+subject, "\r\n") {
		return ErrHeaderInjection
	}
	s.logger.Info("Email not sent (dry run)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}

// NewSender returns the relay sender when email is enabled and the dry-run
// sender otherwise
func NewSender(cfg config.EmailConfig, logger *zap.Logger) Sender {
	if cfg.Enabled {
		return NewSMTPSender(cfg, logger)
	}
	return NewLogSender(logger)
}

// BuildMessage renders an RFC 5322 plain-text message with a UTF-8 body.
// Line endings of the body are normalised to CRLF.
func BuildMessage(from, to, subject, body string, date time.Time) ([]byte, error) {
	for _, v := range []string{from, to, subject} {
		if strings.ContainsAny(v, "\r\n") {
			return nil, ErrHeaderInjection
		}
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")

	body = strings.ReplaceAll(body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String()), nil
}
