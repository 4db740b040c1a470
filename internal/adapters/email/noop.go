package email

import (
	"context"
	"log/slog"
	"time"
)

// NoopSender logs instead of sending. Used when no provider key is set.
type NoopSender struct{}

// NewNoopSender creates a sender that only logs.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the request and reports success.
func (s *NoopSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	slog.Info("email_noop", "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: "noop", SentAt: time.Now()}, nil
}
