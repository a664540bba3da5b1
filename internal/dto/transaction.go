package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountOverride redirects one template line to a different account for a single transaction.
type AccountOverride struct {
	TemplateLineID string `json:"templateLineID" binding:"required"`
	AccountID      string `json:"accountID" binding:"required"`
}

// CreateTransactionRequest defines the payload for creating a draft transaction.
type CreateTransactionRequest struct {
	TemplateID       string                     `json:"templateID" binding:"required"`
	TransactionDate  time.Time                  `json:"transactionDate" binding:"required"`
	Amount           decimal.Decimal            `json:"amount" binding:"required"`
	Description      string                     `json:"description" binding:"required"`
	ReferenceNumber  string                     `json:"referenceNumber"`
	Notes            string                     `json:"notes"`
	ProjectID        *string                    `json:"projectID"`
	AccountOverrides []AccountOverride          `json:"accountOverrides"`
	Variables        map[string]decimal.Decimal `json:"variables"`
}

// UpdateTransactionRequest defines the payload for editing a draft transaction.
// The body is the draft's new state; omitted optional fields are cleared.
type UpdateTransactionRequest struct {
	TransactionDate  time.Time                  `json:"transactionDate" binding:"required"`
	Amount           decimal.Decimal            `json:"amount" binding:"required"`
	Description      string                     `json:"description" binding:"required"`
	ReferenceNumber  string                     `json:"referenceNumber"`
	Notes            string                     `json:"notes"`
	ProjectID        *string                    `json:"projectID"`
	AccountOverrides []AccountOverride          `json:"accountOverrides"`
	Variables        map[string]decimal.Decimal `json:"variables"`
}

// PostTransactionRequest defines the payload for posting a draft transaction.
type PostTransactionRequest struct {
	Variables map[string]decimal.Decimal `json:"variables"`
}

// VoidTransactionRequest defines the payload for voiding a posted transaction.
type VoidTransactionRequest struct {
	Reason domain.VoidReason `json:"reason" binding:"required,oneof=INPUT_ERROR DUPLICATE CANCELLED OTHER"`
	Notes  string            `json:"notes"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Status     string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	TemplateID string     `form:"templateID"`
	ProjectID  string     `form:"projectID"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int        `form:"offset" binding:"omitempty,min=0"`
}

// ListAccountEntriesParams defines query parameters for reading an account's ledger lines.
type ListAccountEntriesParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit    int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset   int        `form:"offset" binding:"omitempty,min=0"`
}

// JournalEntryResponse defines the data returned for a single ledger line.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	JournalNumber string          `json:"journalNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ProjectID     *string         `json:"projectID,omitempty"`
	IsReversal    bool            `json:"isReversal"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	TransactionNumber string                 `json:"transactionNumber"`
	TemplateID        string                 `json:"templateID"`
	TransactionDate   time.Time              `json:"transactionDate"`
	Amount            decimal.Decimal        `json:"amount"`
	Description       string                 `json:"description"`
	ReferenceNumber   string                 `json:"referenceNumber,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Status            string                 `json:"status"`
	ProjectID         *string                `json:"projectID,omitempty"`
	PostedAt          *time.Time             `json:"postedAt,omitempty"`
	PostedBy          string                 `json:"postedBy,omitempty"`
	VoidedAt          *time.Time             `json:"voidedAt,omitempty"`
	VoidedBy          string                 `json:"voidedBy,omitempty"`
	VoidReason        string                 `json:"voidReason,omitempty"`
	VoidNotes         string                 `json:"voidNotes,omitempty"`
	Entries           []JournalEntryResponse `json:"entries,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	CreatedBy         string                 `json:"createdBy"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ListAccountEntriesResponse wraps a page of one account's ledger lines.
type ListAccountEntriesResponse struct {
	AccountID string                 `json:"accountID"`
	Entries   []JournalEntryResponse `json:"entries"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
}

// SequenceStatusResponse defines the state of one numbering counter.
type SequenceStatusResponse struct {
	SequenceType string `json:"sequenceType"`
	Prefix       string `json:"prefix"`
	Year         int    `json:"year"`
	LastNumber   int64  `json:"lastNumber"`
}

// ToSequenceStatusResponses converts a slice of domain.TransactionSequence to []SequenceStatusResponse.
func ToSequenceStatusResponses(sequences []domain.TransactionSequence) []SequenceStatusResponse {
	responses := make([]SequenceStatusResponse, len(sequences))
	for i, s := range sequences {
		responses[i] = SequenceStatusResponse{
			SequenceType: s.SequenceType,
			Prefix:       s.Prefix,
			Year:         s.Year,
			LastNumber:   s.LastNumber,
		}
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		JournalNumber: e.JournalNumber,
		EntryDate:     e.EntryDate,
		AccountID:     e.AccountID,
		DebitAmount:   e.DebitAmount,
		CreditAmount:  e.CreditAmount,
		Description:   e.Description,
		ProjectID:     e.ProjectID,
		IsReversal:    e.IsReversal,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to []JournalEntryResponse.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(&e)
	}
	return responses
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		TemplateID:        t.TemplateID,
		TransactionDate:   t.TransactionDate,
		Amount:            t.Amount,
		Description:       t.Description,
		ReferenceNumber:   t.ReferenceNumber,
		Notes:             t.Notes,
		Status:            string(t.Status),
		ProjectID:         t.ProjectID,
		PostedAt:          t.PostedAt,
		PostedBy:          t.PostedBy,
		VoidedAt:          t.VoidedAt,
		VoidedBy:          t.VoidedBy,
		VoidReason:        string(t.VoidReason),
		VoidNotes:         t.VoidNotes,
		Entries:           ToJournalEntryResponses(t.Entries),
		CreatedAt:         t.CreatedAt,
		CreatedBy:         t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(&t)
	}
	return responses
}
