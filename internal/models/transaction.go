package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus at the storage layer.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
	StatusVoid   TransactionStatus = "VOID"
)

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionNumber string            `json:"transactionNumber"`
	TemplateID        string            `json:"templateID"`
	TransactionDate   time.Time         `json:"transactionDate"`
	Amount            decimal.Decimal   `json:"amount"`
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber"`
	Notes             string            `json:"notes"`
	Status            TransactionStatus `json:"status"`
	ProjectID         *string           `json:"projectID"`
	PostedAt          *time.Time        `json:"postedAt"`
	PostedBy          string            `json:"postedBy"`
	VoidedAt          *time.Time        `json:"voidedAt"`
	VoidedBy          string            `json:"voidedBy"`
	VoidReason        string            `json:"voidReason"`
	VoidNotes         string            `json:"voidNotes"`
	AuditFields
}

// AccountMapping is the row shape of the transaction_account_mappings table.
type AccountMapping struct {
	MappingID      string `json:"mappingID"`
	TransactionID  string `json:"transactionID"`
	TemplateLineID string `json:"templateLineID"`
	AccountID      string `json:"accountID"`
}

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	JournalNumber string          `json:"journalNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ProjectID     *string         `json:"projectID"`
	IsReversal    bool            `json:"isReversal"`
	AuditFields
}

// TransactionSequence is the row shape of the transaction_sequences table.
type TransactionSequence struct {
	SequenceType string `json:"sequenceType"`
	Prefix       string `json:"prefix"`
	Year         int    `json:"year"`
	LastNumber   int64  `json:"lastNumber"`
}
