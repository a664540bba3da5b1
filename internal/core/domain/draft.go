package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftStatus is the lifecycle state of an ingested draft suggestion.
type DraftStatus string

const (
	DraftPending   DraftStatus = "PENDING"
	DraftConverted DraftStatus = "CONVERTED"
	DraftDismissed DraftStatus = "DISMISSED"
)

// DraftTransaction is a suggestion produced by the upstream ingestion
// pipeline (receipt OCR, bank feeds). It only feeds CreateFromDraft; the
// pipeline itself lives outside this service.
type DraftTransaction struct {
	DraftID         string          `json:"draftID"` // Primary Key (UUID)
	MerchantName    string          `json:"merchantName"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate *time.Time      `json:"transactionDate"` // Nullable
	SourceReference string          `json:"sourceReference"` // e.g. upstream message id
	Status          DraftStatus     `json:"status"`
	AuditFields
}
