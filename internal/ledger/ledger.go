package ledger

import (
	"context"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// Ledger is the append-only record of completed sends, used for daily dedup.
// Storage errors always propagate: a read failure must never be mistaken for
// "not yet sent", and a failed append must never be treated as recorded.
type Ledger interface {
	// WasSent reports whether a record exists for this exact email and day
	// (day formatted as model.DayFormat). Absent storage means false.
	WasSent(ctx context.Context, email, day string) (bool, error)

	// Record appends one send record, creating storage on first use. It
	// never deduplicates or rewrites existing entries.
	Record(ctx context.Context, rec model.SendRecord) error
}
