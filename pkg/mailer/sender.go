// Package mailer sends transactional email through SMTP, Resend or nowhere.
package mailer

import (
	"context"
	"errors"
	"time"
)

// Attachment is a file sent inline with the message.
type Attachment struct {
	Filename string
	Content  []byte
}

// SendRequest contains the data needed to send one email.
type SendRequest struct {
	To          []string
	FromName    string // overrides the sender display name
	Subject     string
	HTML        string
	Attachments []Attachment
}

// SendResult contains the response from the relay.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the interface for sending emails via an external relay.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// ErrNoRecipient is returned when To is empty.
var ErrNoRecipient = errors.New("mailer: no recipient")

// ErrNotConfigured is returned when relay credentials are missing.
var ErrNotConfigured = errors.New("mailer: relay credentials not configured")
