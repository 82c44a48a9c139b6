package email

import (
	"bytes"
	"context"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/config"
)

// SMTPSender implements Sender over authenticated SMTP. Port 465 uses
// implicit TLS; other ports negotiate STARTTLS.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg config.SMTPConfig, fromAddress, fromName string) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	if fromAddress == "" {
		fromAddress = cfg.Username
	}
	if fromAddress == "" {
		return nil, fmt.Errorf("smtp: sender address is required")
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     fromAddress,
		fromName: fromName,
	}, nil
}

// Send delivers the message, embedding the inline image when present.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	if msg.Inline != nil {
		m.EmbedReader(msg.Inline.Filename, bytes.NewReader(msg.Inline.Data),
			mail.SetHeader(map[string][]string{
				"Content-ID":   {"<" + msg.Inline.ContentID + ">"},
				"Content-Type": {msg.Inline.ContentType},
			}))
	}

	d := mail.NewDialer(s.host, s.port, s.username, s.password)
	d.SSL = s.port == 465

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}
	return nil
}
