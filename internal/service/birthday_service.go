package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/card"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/config"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/contacts"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/email"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/ledger"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/logger"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// Status is the per-recipient outcome of a run.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome for one birthday match.
type Result struct {
	Name   string
	Email  string
	Status Status
	Err    error
}

// Summary aggregates the results of one run.
type Summary struct {
	Day     string
	Results []Result
}

// Count returns how many results have the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// BirthdayService orchestrates one daily run: match today's birthdays,
// skip anyone already in the ledger, render and email a card per match,
// and record each confirmed send.
type BirthdayService struct {
	dir      contacts.Directory
	composer *card.Composer
	sender   email.Sender
	ledger   ledger.Ledger
	cfg      *config.Config
	log      *logger.Logger
	now      func() time.Time
}

// NewBirthdayService creates a new BirthdayService.
func NewBirthdayService(
	dir contacts.Directory,
	composer *card.Composer,
	sender email.Sender,
	led ledger.Ledger,
	cfg *config.Config,
	log *logger.Logger,
) *BirthdayService {
	return &BirthdayService{
		dir:      dir,
		composer: composer,
		sender:   sender,
		ledger:   led,
		cfg:      cfg,
		log:      log.WithComponent("birthday"),
		now:      time.Now,
	}
}

// Run executes the pipeline for the current day. A render or send failure is
// isolated to its recipient; a ledger failure aborts the run, since the
// ledger state can no longer be trusted for dedup.
func (s *BirthdayService) Run(ctx context.Context) (*Summary, error) {
	day := s.now()
	today := model.Day(day)
	summary := &Summary{Day: today}

	groupID := ""
	if s.cfg.Contacts.GroupName != "" || s.cfg.Contacts.GroupFallbackID != "" {
		id, err := s.dir.ResolveGroup(ctx, s.cfg.Contacts.GroupName, s.cfg.Contacts.GroupFallbackID)
		if err != nil {
			return summary, err
		}
		groupID = id
	}

	all, err := s.dir.Contacts(ctx)
	if err != nil {
		return summary, err
	}

	matches := contacts.BirthdaysOn(all, groupID, day)
	if len(matches) == 0 {
		s.log.Info().Str("day", today).Msg("no birthdays today")
		return summary, nil
	}

	for _, m := range matches {
		rlog := s.log.WithRecipient(m.Name, m.Email)

		sent, err := s.ledger.WasSent(ctx, m.Email, today)
		if err != nil {
			return summary, fmt.Errorf("ledger check failed: %w", err)
		}
		if sent {
			rlog.Info().Msg("already sent today, skipping")
			summary.Results = append(summary.Results, Result{Name: m.Name, Email: m.Email, Status: StatusSkipped})
			continue
		}

		data, err := s.renderCard(m.Name, day)
		if err != nil {
			rlog.Error().Err(err).Msg("failed to render card")
			summary.Results = append(summary.Results, Result{Name: m.Name, Email: m.Email, Status: StatusFailed, Err: err})
			continue
		}

		inline := email.NewInlinePNG(data)
		msg := email.Message{
			To:       m.Email,
			Subject:  strings.ReplaceAll(s.cfg.Email.Subject, "{name}", m.Name),
			TextBody: email.BirthdayText(m.Name, s.cfg.Email.ClubName),
			HTMLBody: email.BirthdayHTML(m.Name, s.cfg.Email.ClubName, inline.ContentID),
			Inline:   inline,
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			rlog.Error().Err(err).Msg("failed to send email")
			summary.Results = append(summary.Results, Result{Name: m.Name, Email: m.Email, Status: StatusFailed, Err: err})
			continue
		}

		rec := model.SendRecord{Name: m.Name, Email: m.Email, Date: today}
		if err := s.ledger.Record(ctx, rec); err != nil {
			// The email went out but the send was not recorded; abort so
			// the operator sees it rather than resending tomorrow's run.
			return summary, fmt.Errorf("send confirmed but not recorded for %s: %w", m.Email, err)
		}

		rlog.Info().Msg("birthday card sent")
		summary.Results = append(summary.Results, Result{Name: m.Name, Email: m.Email, Status: StatusSent})
	}

	s.log.Info().
		Str("day", today).
		Int("sent", summary.Count(StatusSent)).
		Int("skipped", summary.Count(StatusSkipped)).
		Int("failed", summary.Count(StatusFailed)).
		Msg("run complete")
	return summary, nil
}

func (s *BirthdayService) renderCard(name string, day time.Time) ([]byte, error) {
	col, err := card.ParseColor(s.cfg.Card.Color)
	if err != nil {
		return nil, err
	}

	req := card.Request{
		TemplatePath: s.cfg.Card.Template,
		Name:         name,
		Color:        col,
		YOffset:      s.cfg.Card.YOffset,
		Shadow:       s.cfg.Card.Shadow,
		StrokeWidth:  s.cfg.Card.StrokeWidth,
	}
	if s.cfg.Card.Box != "" {
		box, err := card.ParseBox(s.cfg.Card.Box)
		if err != nil {
			return nil, err
		}
		req.Box = &box
	}
	if s.cfg.Card.AddDate {
		req.DateLine = card.DateLine(day)
	}

	img, err := s.composer.Compose(req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}
