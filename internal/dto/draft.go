package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest defines the payload for capturing a draft transaction.
type CreateDraftRequest struct {
	MerchantName    string          `json:"merchantName" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate *time.Time      `json:"transactionDate"`
	SourceReference string          `json:"sourceReference"`
}

// ConvertDraftRequest defines the payload for turning a captured draft into a transaction.
type ConvertDraftRequest struct {
	TemplateID       string                     `json:"templateID" binding:"required"`
	TransactionDate  *time.Time                 `json:"transactionDate"`
	Amount           *decimal.Decimal           `json:"amount"`
	Description      string                     `json:"description"`
	ProjectID        *string                    `json:"projectID"`
	AccountOverrides []AccountOverride          `json:"accountOverrides"`
	Variables        map[string]decimal.Decimal `json:"variables"`
}

// ListDraftsParams defines query parameters for listing captured drafts.
type ListDraftsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONVERTED DISMISSED"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// DraftResponse defines the data returned for a captured draft.
type DraftResponse struct {
	DraftID         string          `json:"draftID"`
	MerchantName    string          `json:"merchantName"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
	SourceReference string          `json:"sourceReference,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToDraftResponse converts a domain.DraftTransaction to DraftResponse DTO.
func ToDraftResponse(d *domain.DraftTransaction) DraftResponse {
	return DraftResponse{
		DraftID:         d.DraftID,
		MerchantName:    d.MerchantName,
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		SourceReference: d.SourceReference,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDraftResponses converts a slice of domain.DraftTransaction to []DraftResponse.
func ToDraftResponses(drafts []domain.DraftTransaction) []DraftResponse {
	responses := make([]DraftResponse, len(drafts))
	for i, d := range drafts {
		responses[i] = ToDraftResponse(&d)
	}
	return responses
}
