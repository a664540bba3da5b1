package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one ledger line produced by posting a transaction.
// Exactly one of DebitAmount/CreditAmount is nonzero, and neither is negative.
// Entries are immutable once written: voiding appends reversals, it never
// mutates or removes originals.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // Non-owning back-reference
	JournalNumber string          `json:"journalNumber"` // e.g. JE-2025-0001-01, unique
	EntryDate     time.Time       `json:"entryDate"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ProjectID     *string         `json:"projectID"` // Inherited from the transaction
	IsReversal    bool            `json:"isReversal"`
	AuditFields
}

// IsDebit reports whether the entry carries its amount on the debit side.
func (e *JournalEntry) IsDebit() bool {
	return e.DebitAmount.GreaterThan(decimal.Zero)
}

// Amount returns the nonzero side of the entry.
func (e *JournalEntry) Amount() decimal.Decimal {
	if e.IsDebit() {
		return e.DebitAmount
	}
	return e.CreditAmount
}

// Reversed returns the equal-and-opposite entry used to void e. The caller
// assigns the fresh journal number and audit fields.
func (e *JournalEntry) Reversed() JournalEntry {
	return JournalEntry{
		TransactionID: e.TransactionID,
		EntryDate:     e.EntryDate,
		AccountID:     e.AccountID,
		DebitAmount:   e.CreditAmount,
		CreditAmount:  e.DebitAmount,
		Description:   "Reversal: " + e.Description,
		ProjectID:     e.ProjectID,
		IsReversal:    true,
	}
}
