package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

// NewResendSender creates a sender with the given API key and from address.
func NewResendSender(apiKey, from, fromName string, logger *zap.Logger) *ResendSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendSender{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipient
	}
	name := req.FromName
	if name == "" {
		name = s.fromName
	}
	from := s.from
	if name != "" {
		from = fmt.Sprintf("%s <%s>", name, s.from)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	for _, a := range req.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:  a.Content,
			Filename: a.Filename,
		})
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend send failed", zap.Strings("to", req.To), zap.String("subject", req.Subject), zap.Error(err))
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}
	s.logger.Info("resend sent", zap.String("message_id", sent.Id), zap.Strings("to", req.To))
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}
