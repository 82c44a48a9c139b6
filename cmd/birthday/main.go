package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/card"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/config"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/contacts"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/database"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/email"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/ledger"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/logger"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/recipients"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "birthday",
	Short: "Birthday card generator and sender for Club Discóbolo",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send cards to contacts whose birthday is today",
	RunE:  runRun,
}

var renderCmd = &cobra.Command{
	Use:   "render [name]",
	Short: "Render a card for one name, or for a CSV of recipients",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List available contact groups",
	RunE:  runGroups,
}

var renderFlags struct {
	csvPath string
	out     string
	send    bool
}

func init() {
	renderCmd.Flags().StringVar(&renderFlags.csvPath, "csv", "", "CSV with name and optional email columns for batch rendering")
	renderCmd.Flags().StringVar(&renderFlags.out, "out", "", "output image path (single name mode)")
	renderCmd.Flags().BoolVar(&renderFlags.send, "send", false, "email rendered cards to recipients with an address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(groupsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := context.Background()

	dir, err := contacts.NewGoogleDirectory(ctx, cfg.Contacts, log)
	if err != nil {
		return err
	}

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}

	led, cleanup, err := newLedger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	composer := card.NewComposer(card.ResolveFont(cfg.Card.Font), cfg.Card.BottomRatio, cfg.Card.Margin)
	svc := service.NewBirthdayService(dir, composer, sender, led, cfg, log)

	summary, err := svc.Run(ctx)
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Printf("%s: %s (%s): %v\n", r.Status, r.Name, r.Email, r.Err)
		} else {
			fmt.Printf("%s: %s (%s)\n", r.Status, r.Name, r.Email)
		}
	}
	if err != nil {
		return err
	}
	if len(summary.Results) == 0 {
		fmt.Println("No birthdays today.")
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := context.Background()

	var rows []recipients.Row
	switch {
	case renderFlags.csvPath != "":
		rows, err = recipients.ParseFile(renderFlags.csvPath)
		if err != nil {
			return err
		}
	case len(args) == 1:
		rows = []recipients.Row{{Name: args[0]}}
	default:
		return fmt.Errorf("provide a NAME or use --csv for batch mode")
	}

	var sender email.Sender
	if renderFlags.send {
		sender, err = newSender(ctx, cfg)
		if err != nil {
			return err
		}
	}

	col, err := card.ParseColor(cfg.Card.Color)
	if err != nil {
		return err
	}
	var box *card.TextBox
	if cfg.Card.Box != "" {
		b, err := card.ParseBox(cfg.Card.Box)
		if err != nil {
			return err
		}
		box = &b
	}

	if err := os.MkdirAll(cfg.Card.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	composer := card.NewComposer(card.ResolveFont(cfg.Card.Font), cfg.Card.BottomRatio, cfg.Card.Margin)
	for _, row := range rows {
		req := card.Request{
			TemplatePath: cfg.Card.Template,
			Name:         row.Name,
			Box:          box,
			Color:        col,
			YOffset:      cfg.Card.YOffset,
			Shadow:       cfg.Card.Shadow,
			StrokeWidth:  cfg.Card.StrokeWidth,
		}
		if cfg.Card.AddDate {
			req.DateLine = card.DateLine(time.Now())
		}

		img, err := composer.Compose(req)
		if err != nil {
			return err
		}

		outPath := renderFlags.out
		if outPath == "" || len(rows) > 1 {
			outPath = filepath.Join(cfg.Card.OutDir, row.Name+".png")
		}
		if err := imaging.Save(img, outPath); err != nil {
			return fmt.Errorf("failed to save %s: %w", outPath, err)
		}
		fmt.Println(outPath)

		if renderFlags.send && row.Email != "" {
			if err := sendRendered(ctx, sender, cfg, row, outPath); err != nil {
				log.Error().Err(err).Str("email", row.Email).Msg("failed to send card")
			}
		}
	}
	return nil
}

func sendRendered(ctx context.Context, sender email.Sender, cfg *config.Config, row recipients.Row, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	inline := email.NewInlinePNG(data)
	return sender.Send(ctx, email.Message{
		To:       row.Email,
		Subject:  subjectFor(cfg, row.Name),
		TextBody: email.BirthdayText(row.Name, cfg.Email.ClubName),
		HTMLBody: email.BirthdayHTML(row.Name, cfg.Email.ClubName, inline.ContentID),
		Inline:   inline,
	})
}

func subjectFor(cfg *config.Config, name string) string {
	return strings.ReplaceAll(cfg.Email.Subject, "{name}", name)
}

func runGroups(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := context.Background()

	dir, err := contacts.NewGoogleDirectory(ctx, cfg.Contacts, log)
	if err != nil {
		return err
	}
	groups, err := dir.ListGroups(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Printf("- %s (%s)\n", g.Name, g.ID)
	}
	return nil
}

func newSender(ctx context.Context, cfg *config.Config) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "gmail":
		if cfg.Email.Gmail.CredentialsJSON != "" {
			return email.NewGmailSender(ctx, cfg.Email.Gmail, cfg.Email.FromAddress, cfg.Email.FromName)
		}
		return email.NewGmailSenderWithToken(ctx, cfg.Email.Gmail, cfg.Email.FromAddress, cfg.Email.FromName)
	case "smtp":
		return email.NewSMTPSender(cfg.Email.SMTP, cfg.Email.FromAddress, cfg.Email.FromName)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}

func newLedger(cfg *config.Config) (ledger.Ledger, func(), error) {
	switch cfg.Ledger.Backend {
	case "postgres":
		db, err := database.NewPostgres(cfg.Ledger.Database)
		if err != nil {
			return nil, nil, err
		}
		return ledger.NewPostgres(db), func() { db.Close() }, nil
	case "csv":
		return ledger.NewCSV(cfg.Ledger.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}
