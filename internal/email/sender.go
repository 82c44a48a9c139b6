package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Sender is the interface that all email providers must implement.
// This abstraction allows swapping providers (SMTP, Gmail API, SES, etc.)
// without changing business logic.
type Sender interface {
	// Send delivers an email to the specified recipient.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent.
type Message struct {
	To       string  // recipient email address
	Subject  string  // email subject
	TextBody string  // plain-text body
	HTMLBody string  // HTML body, may reference the inline image by cid
	Inline   *Inline // optional inline image
}

// Inline is an image embedded in the HTML body via its Content-ID.
type Inline struct {
	Filename    string
	ContentType string
	ContentID   string
	Data        []byte
}

// NewInlinePNG wraps rendered card bytes as an inline PNG with a fresh
// Content-ID.
func NewInlinePNG(data []byte) *Inline {
	return &Inline{
		Filename:    "card.png",
		ContentType: "image/png",
		ContentID:   fmt.Sprintf("%s@discobolo.club", uuid.NewString()),
		Data:        data,
	}
}
