package ledger

import (
	"context"
	"fmt"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/database"
	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// PostgresLedger persists send records in a send_ledger table. Unlike the
// CSV backend, appends are transactional, so it is safe to run multiple
// instances against the same ledger.
type PostgresLedger struct {
	db *database.Postgres
}

// NewPostgres creates a PostgresLedger. The schema is managed by the
// migrate tool (see migrations/).
func NewPostgres(db *database.Postgres) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// WasSent reports whether a record exists for this email and day.
func (l *PostgresLedger) WasSent(ctx context.Context, email, day string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM send_ledger WHERE email = $1 AND sent_on = $2)`
	var exists bool
	err := l.db.QueryRowContext(ctx, query, email, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check send ledger: %w", err)
	}
	return exists, nil
}

// Record appends one send record.
func (l *PostgresLedger) Record(ctx context.Context, rec model.SendRecord) error {
	query := `INSERT INTO send_ledger (name, email, sent_on) VALUES ($1, $2, $3)`
	if _, err := l.db.ExecContext(ctx, query, rec.Name, rec.Email, rec.Date); err != nil {
		return fmt.Errorf("failed to append send ledger record: %w", err)
	}
	return nil
}
