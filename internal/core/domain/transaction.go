package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction.
// The only legal moves are DRAFT -> POSTED -> VOID, or deleting a DRAFT.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
	StatusVoid   TransactionStatus = "VOID"
)

// VoidReason categorizes why a posted transaction was voided.
type VoidReason string

const (
	VoidInputError VoidReason = "INPUT_ERROR"
	VoidDuplicate  VoidReason = "DUPLICATE"
	VoidCancelled  VoidReason = "CANCELLED"
	VoidOther      VoidReason = "OTHER"
)

// Transaction is the posting aggregate: a header bound to a journal template,
// owning its journal entries once posted.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`     // Primary Key (UUID)
	TransactionNumber string            `json:"transactionNumber"` // e.g. TRX-2025-0001, unique
	TemplateID        string            `json:"templateID"`        // FK -> JournalTemplate
	TransactionDate   time.Time         `json:"transactionDate"`
	Amount            decimal.Decimal   `json:"amount"` // Driving amount fed to line formulas
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber"` // Nullable external reference
	Notes             string            `json:"notes"`           // Nullable
	Status            TransactionStatus `json:"status"`
	ProjectID         *string           `json:"projectID"`       // Nullable FK -> Project
	AccountMappings   []AccountMapping  `json:"accountMappings"` // Per-transaction line overrides
	PostedAt          *time.Time        `json:"postedAt"`
	PostedBy          string            `json:"postedBy"`
	VoidedAt          *time.Time        `json:"voidedAt"`
	VoidedBy          string            `json:"voidedBy"`
	VoidReason        VoidReason        `json:"voidReason"` // Empty unless VOID
	VoidNotes         string            `json:"voidNotes"`
	Entries           []JournalEntry    `json:"entries"` // Empty while DRAFT
	AuditFields
}

// AccountMapping overrides the account a template line would default to,
// scoped to a single transaction.
type AccountMapping struct {
	MappingID      string `json:"mappingID"`      // Primary Key (UUID)
	TransactionID  string `json:"transactionID"`  // FK -> Transaction
	TemplateLineID string `json:"templateLineID"` // FK -> TemplateLine
	AccountID      string `json:"accountID"`      // Override target account
}

// IsDraft reports whether the transaction is still editable.
func (t *Transaction) IsDraft() bool { return t.Status == StatusDraft }

// IsPosted reports whether the transaction has materialized journal entries.
func (t *Transaction) IsPosted() bool { return t.Status == StatusPosted }

// IsVoid reports whether the transaction has been voided.
func (t *Transaction) IsVoid() bool { return t.Status == StatusVoid }

// OverrideFor returns the override account for a template line, if any.
func (t *Transaction) OverrideFor(templateLineID string) (string, bool) {
	for _, m := range t.AccountMappings {
		if m.TemplateLineID == templateLineID {
			return m.AccountID, true
		}
	}
	return "", false
}

// TransactionFilter narrows transaction list queries. Zero values mean "any".
type TransactionFilter struct {
	Status     TransactionStatus
	TemplateID string
	ProjectID  string
	DateFrom   *time.Time
	DateTo     *time.Time
}
