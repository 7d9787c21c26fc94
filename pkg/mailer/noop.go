package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NoopSender logs sends but does not deliver them. Used in development.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a NoopSender.
func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

// Send implements Sender.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipient
	}
	s.logger.Info("noop email send", zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
