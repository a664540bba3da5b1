package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftTransaction is the row shape of the draft_transactions table.
type DraftTransaction struct {
	DraftID         string          `json:"draftID"`
	MerchantName    string          `json:"merchantName"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate *time.Time      `json:"transactionDate"`
	SourceReference string          `json:"sourceReference"`
	Status          string          `json:"status"`
	AuditFields
}
