package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/config"
)

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service       *gmail.Service
	senderAddress string
	senderName    string
}

// NewGmailSender creates a GmailSender from a service account credentials
// JSON with domain-wide delegation, impersonating the sender mailbox.
func NewGmailSender(ctx context.Context, cfg config.GmailEmailConfig, senderAddress, senderName string) (*GmailSender, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("gmail: credentials JSON is required")
	}
	if senderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
	}
	jwtConfig.Subject = senderAddress

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// NewGmailSenderWithToken creates a GmailSender using OAuth2 client
// credentials + refresh token. This works for personal Gmail accounts
// without domain-wide delegation.
func NewGmailSenderWithToken(ctx context.Context, cfg config.GmailEmailConfig, senderAddress, senderName string) (*GmailSender, error) {
	if senderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	from := g.senderAddress
	if g.senderName != "" {
		from = fmt.Sprintf("%s <%s>", g.senderName, g.senderAddress)
	}

	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildMIME(from, msg))),
	}

	if _, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}
	return nil
}

const (
	altBoundary = "boundary_discobolo_alt"
	relBoundary = "boundary_discobolo_rel"
)

// buildMIME assembles the raw message: multipart/alternative for text+HTML,
// wrapped in multipart/related when an inline image is attached.
func buildMIME(from string, msg Message) string {
	headers := []string{
		"From: " + from,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
	}

	alternative := []string{
		"--" + altBoundary,
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 7bit",
		"",
		msg.TextBody,
		"",
		"--" + altBoundary,
		"Content-Type: text/html; charset=UTF-8",
		"Content-Transfer-Encoding: 7bit",
		"",
		msg.HTMLBody,
		"",
		"--" + altBoundary + "--",
	}

	if msg.Inline == nil {
		if msg.HTMLBody == "" {
			return strings.Join(append(headers,
				"Content-Type: text/plain; charset=UTF-8",
				"",
				msg.TextBody,
			), "\r\n")
		}
		parts := append(headers, "Content-Type: multipart/alternative; boundary="+altBoundary, "")
		return strings.Join(append(parts, alternative...), "\r\n")
	}

	parts := append(headers, "Content-Type: multipart/related; boundary="+relBoundary, "")
	parts = append(parts,
		"--"+relBoundary,
		"Content-Type: multipart/alternative; boundary="+altBoundary,
		"",
	)
	parts = append(parts, alternative...)
	parts = append(parts,
		"",
		"--"+relBoundary,
		fmt.Sprintf("Content-Type: %s; name=%q", msg.Inline.ContentType, msg.Inline.Filename),
		"Content-Transfer-Encoding: base64",
		fmt.Sprintf("Content-ID: <%s>", msg.Inline.ContentID),
		fmt.Sprintf("Content-Disposition: inline; filename=%q", msg.Inline.Filename),
		"",
		wrapBase64(msg.Inline.Data),
		"--"+relBoundary+"--",
	)
	return strings.Join(parts, "\r\n")
}

// wrapBase64 encodes data and folds it into 76-character lines per RFC 2045.
func wrapBase64(data []byte) string {
	enc := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(enc) > 76 {
		b.WriteString(enc[:76])
		b.WriteString("\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc)
	return b.String()
}
