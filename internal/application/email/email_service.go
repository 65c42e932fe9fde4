// Package email provides the application service behind /emails/send.
package email

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrDeliveryFailed is returned when the relay rejects or cannot take a message
var ErrDeliveryFailed = shared.NewDomainError("EMAIL_DELIVERY_FAILED", "The email could not be delivered")

// Sender hands a plain-text message to a mail transport
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	// DryRun reports whether messages are only logged
	DryRun() bool
}

// Metrics counts send attempts
type Metrics interface {
	RecordEmail(ctx context.Context, success bool)
}

// SendRequest is the body of POST /emails/send
type SendRequest struct {
	To      string `json:"to" binding:"required,email,max=255"`
	Subject string `json:"subject" binding:"required,min=1,max=255"`
	Body    string `json:"body" binding:"required,min=1,max=65536"`
}

// SendResponse reports the outcome of a send
type SendResponse struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	DryRun  bool      `json:"dry_run"`
	SentAt  time.Time `json:"sent_at"`
}

// EmailService sends emails on behalf of a user
type EmailService struct {
	sender  Sender
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewEmailService creates a new EmailService
func NewEmailService(sender Sender, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{sender: sender, logger: logger, now: time.Now}
}

// SetMetrics sets the optional send metrics recorder
func (s *EmailService) SetMetrics(m Metrics) {
	s.metrics = m
}

// Send delivers one message. Transport failures are logged and reported as
// ErrDeliveryFailed without exposing the relay's response.
func (s *EmailService) Send(ctx context.Context, userID uuid.UUID, req SendRequest) (*SendResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "email", "send")
	defer span.End()
	span.SetAttributes(attribute.Bool("email.dry_run", s.sender.DryRun()))

	err := s.sender.Send(ctx, req.To, req.Subject, req.Body)
	if s.metrics != nil {
		s.metrics.RecordEmail(ctx, err == nil)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Email delivery failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, ErrDeliveryFailed
	}

	return &SendResponse{
		To:      req.To,
		Subject: req.Subject,
		DryRun:  s.sender.DryRun(),
		SentAt:  s.now().UTC(),
	}, nil
}
