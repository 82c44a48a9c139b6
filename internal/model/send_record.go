package model

import "time"

// DayFormat is the calendar-day representation used by the send ledger.
const DayFormat = "2006-01-02"

// SendRecord is one confirmed card delivery. Email is the dedup key;
// the name is kept for humans reading the ledger.
type SendRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Date is the local calendar day of the send, formatted as DayFormat.
	Date string `json:"date"`
}

// Day formats t as a ledger day in local time.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}
