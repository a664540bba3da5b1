// Package numbering formats the year-scoped document numbers issued by the
// sequence counters. The formats are a wire contract: downstream reporting
// parses them.
package numbering

import "fmt"

// Prefixes for the two sequence types.
const (
	TransactionPrefix = "TRX"
	JournalPrefix     = "JE"
)

// TransactionNumber formats a transaction number, e.g. TRX-2025-0001.
func TransactionNumber(year int, n int64) string {
	return fmt.Sprintf("%s-%d-%04d", TransactionPrefix, year, n)
}

// JournalNumber formats the journal number shared by all lines of one
// posting event, e.g. JE-2025-0001.
func JournalNumber(year int, n int64) string {
	return fmt.Sprintf("%s-%d-%04d", JournalPrefix, year, n)
}

// LineNumber suffixes a journal number for one line, e.g. JE-2025-0001-02.
// Lines are numbered from 1.
func LineNumber(journalNumber string, line int) string {
	return fmt.Sprintf("%s-%02d", journalNumber, line)
}
