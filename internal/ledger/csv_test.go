package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

func TestCSVLedgerWasSentMissingFile(t *testing.T) {
	l := NewCSV(filepath.Join(t.TempDir(), "sent.csv"))

	sent, err := l.WasSent(context.Background(), "ana@example.com", "2025-03-14")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestCSVLedgerRecordThenWasSent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.csv")
	l := NewCSV(path)
	ctx := context.Background()

	sent, err := l.WasSent(ctx, "ana@example.com", "2025-03-14")
	require.NoError(t, err)
	require.False(t, sent)

	rec := model.SendRecord{Name: "Ana", Email: "ana@example.com", Date: "2025-03-14"}
	require.NoError(t, l.Record(ctx, rec))

	sent, err = l.WasSent(ctx, "ana@example.com", "2025-03-14")
	require.NoError(t, err)
	assert.True(t, sent)

	// Same email, next calendar day: eligible again.
	sent, err = l.WasSent(ctx, "ana@example.com", "2025-03-15")
	require.NoError(t, err)
	assert.False(t, sent)

	// Different email, same day.
	sent, err = l.WasSent(ctx, "luis@example.com", "2025-03-14")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestCSVLedgerRecordIsIdempotentForReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.csv")
	l := NewCSV(path)
	ctx := context.Background()

	rec := model.SendRecord{Name: "Ana", Email: "ana@example.com", Date: "2025-03-14"}
	require.NoError(t, l.Record(ctx, rec))
	require.NoError(t, l.Record(ctx, rec))

	sent, err := l.WasSent(ctx, "ana@example.com", "2025-03-14")
	require.NoError(t, err)
	assert.True(t, sent)

	// Duplicates are kept as-is; the header is written exactly once.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,email,date", lines[0])
	assert.Equal(t, lines[1], lines[2])
}

func TestCSVLedgerReadErrorPropagates(t *testing.T) {
	// A directory at the ledger path is an I/O error, not "not yet sent".
	dir := t.TempDir()
	l := NewCSV(dir)

	_, err := l.WasSent(context.Background(), "ana@example.com", "2025-03-14")
	assert.Error(t, err)
}

func TestCSVLedgerWriteErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	l := NewCSV(dir)

	err := l.Record(context.Background(), model.SendRecord{Name: "Ana", Email: "a@b", Date: "2025-03-14"})
	assert.Error(t, err)
}
