package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// csvHeader is the ledger file header row.
var csvHeader = []string{"name", "email", "date"}

// CSVLedger persists send records in an append-only UTF-8 CSV file with a
// header row. The file is opened and closed within each call; no handle is
// held across a run.
type CSVLedger struct {
	path string
}

// NewCSV creates a CSVLedger at the given path. The file is created lazily
// on the first Record call.
func NewCSV(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// WasSent reports whether a row with this exact email and day exists.
// A missing ledger file means nothing was sent yet.
func (l *CSVLedger) WasSent(ctx context.Context, email, day string) (bool, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Skip the header row; an empty file has no records.
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read ledger %s: %w", l.path, err)
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read ledger %s: %w", l.path, err)
		}
		if len(row) >= 3 && row[1] == email && row[2] == day {
			return true, nil
		}
	}
}

// Record appends one row, writing the header first when the file is new.
func (l *CSVLedger) Record(ctx context.Context, rec model.SendRecord) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat ledger %s: %w", l.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}
	if err := w.Write([]string{rec.Name, rec.Email, rec.Date}); err != nil {
		return fmt.Errorf("failed to append ledger record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger %s: %w", l.path, err)
	}
	return nil
}
