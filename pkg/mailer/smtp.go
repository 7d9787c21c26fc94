package mailer

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig configures the SMTP relay. For Gmail use smtp.gmail.com:587
// with an app password.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender sends email through an authenticated SMTP relay.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer dialer
	logger *zap.Logger
}

// NewSMTPSender creates a sender. From defaults to Username.
func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (s *SMTPSender) message(req SendRequest) *gomail.Message {
	fromName := req.FromName
	if fromName == "" {
		fromName = s.cfg.FromName
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, fromName)
	m.SetHeader("To", req.To...)
	m.SetHeader("Subject", req.Subject)
	m.SetBody("text/html", req.HTML)
	for _, a := range req.Attachments {
		content := a.Content
		m.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return m
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipient
	}
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return SendResult{}, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}
	if err := s.dialer.DialAndSend(s.message(req)); err != nil {
		s.logger.Error("smtp send failed", zap.Strings("to", req.To), zap.String("subject", req.Subject), zap.Error(err))
		return SendResult{}, fmt.Errorf("smtp send: %w", err)
	}
	now := time.Now()
	s.logger.Info("smtp sent", zap.Strings("to", req.To), zap.String("subject", req.Subject), zap.Int("attachments", len(req.Attachments)))
	return SendResult{MessageID: fmt.Sprintf("smtp-%d", now.UnixNano()), SentAt: now}, nil
}
