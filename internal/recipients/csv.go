package recipients

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one batch recipient: a name, optionally with an email address.
type Row struct {
	Name  string
	Email string
}

// ParseFile reads a recipient list from a CSV file. See Parse.
func ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipient list %s: %w", path, err)
	}
	defer f.Close()
	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipient list %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads a recipient CSV. Input shape is decided once up front: when
// the first row is a header naming a "name" column, columns are mapped by
// header; otherwise rows are read positionally as name,email.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	nameCol, emailCol := 0, 1
	start := 0
	if idx := headerIndex(records[0], "name"); idx >= 0 {
		nameCol = idx
		emailCol = headerIndex(records[0], "email")
		start = 1
	}

	var rows []Row
	for _, rec := range records[start:] {
		if len(rec) == 0 || nameCol >= len(rec) {
			continue
		}
		row := Row{Name: strings.TrimSpace(rec[nameCol])}
		if row.Name == "" {
			continue
		}
		if emailCol >= 0 && emailCol < len(rec) {
			row.Email = strings.TrimSpace(rec[emailCol])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
