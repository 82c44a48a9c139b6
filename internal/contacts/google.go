package contacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/config"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/logger"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// GoogleDirectory implements Directory using the Google People API.
type GoogleDirectory struct {
	svc      *people.Service
	pageSize int64
	log      *logger.Logger
}

// NewGoogleDirectory authenticates against the People API using the OAuth2
// client secrets and cached user token from cfg. When no token is cached it
// runs the interactive authorization flow and persists the result.
func NewGoogleDirectory(ctx context.Context, cfg config.ContactsConfig, log *logger.Logger) (*GoogleDirectory, error) {
	b, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials %s: %w", cfg.CredentialsPath, err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, people.ContactsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cfg.TokenPath, tok); err != nil {
			return nil, err
		}
	}

	// Force a refresh now so an expired token fails fast, and persist the
	// rotated token for the next run.
	ts := oauthCfg.TokenSource(ctx, tok)
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		if err := saveToken(cfg.TokenPath, fresh); err != nil {
			return nil, err
		}
	}

	svc, err := people.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create people service: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 2000
	}

	return &GoogleDirectory{svc: svc, pageSize: pageSize, log: log.WithComponent("contacts")}, nil
}

// ListGroups returns all contact groups visible to the authorized user.
func (d *GoogleDirectory) ListGroups(ctx context.Context) ([]model.Group, error) {
	resp, err := d.svc.ContactGroups.List().PageSize(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list contact groups: %w", err)
	}
	groups := make([]model.Group, 0, len(resp.ContactGroups))
	for _, g := range resp.ContactGroups {
		groups = append(groups, model.Group{ID: g.ResourceName, Name: g.Name})
	}
	return groups, nil
}

// ResolveGroup finds the group whose display name matches (case-insensitive),
// falling back to fallbackID when no group matches.
func (d *GoogleDirectory) ResolveGroup(ctx context.Context, name, fallbackID string) (string, error) {
	groups, err := d.ListGroups(ctx)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, g := range groups {
		if strings.ToLower(strings.TrimSpace(g.Name)) == want {
			d.log.Debug().Str("group", g.Name).Str("id", g.ID).Msg("resolved contact group")
			return g.ID, nil
		}
	}
	if fallbackID != "" {
		d.log.Warn().Str("group", name).Str("fallback_id", fallbackID).Msg("group name not found, using fallback")
		return fallbackID, nil
	}
	return "", fmt.Errorf("contact group %q not found", name)
}

// Contacts fetches all connections, following page tokens until exhausted.
func (d *GoogleDirectory) Contacts(ctx context.Context) ([]model.Contact, error) {
	var out []model.Contact
	pageToken := ""
	for {
		call := d.svc.People.Connections.List("people/me").
			PersonFields("names,birthdays,emailAddresses,memberships").
			PageSize(d.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list connections: %w", err)
		}
		for _, p := range resp.Connections {
			out = append(out, toContact(p))
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

func toContact(p *people.Person) model.Contact {
	var c model.Contact
	if len(p.Names) > 0 {
		c.Name = p.Names[0].DisplayName
	}
	if len(p.EmailAddresses) > 0 {
		c.Email = p.EmailAddresses[0].Value
	}
	if len(p.Birthdays) > 0 && p.Birthdays[0].Date != nil {
		c.BirthMonth = int(p.Birthdays[0].Date.Month)
		c.BirthDay = int(p.Birthdays[0].Date.Day)
	}
	for _, m := range p.Memberships {
		if m.ContactGroupMembership != nil {
			c.GroupIDs = append(c.GroupIDs, m.ContactGroupMembership.ContactGroupResourceName)
		}
	}
	return c
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// tokenFromWeb runs the out-of-band authorization flow: the operator opens
// the printed URL and pastes back the authorization code.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	url := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to save token %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
