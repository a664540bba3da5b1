package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TemplateLineRequest defines one line of a template create/update payload.
type TemplateLineRequest struct {
	AccountID string `json:"accountID" binding:"required"`
	Position  string `json:"position" binding:"required,oneof=DEBIT CREDIT"`
	Formula   string `json:"formula" binding:"required"`
	LineOrder int    `json:"lineOrder" binding:"required,min=1"`
}

// CreateTemplateRequest defines the payload for creating a journal template.
type CreateTemplateRequest struct {
	Name     string                  `json:"name" binding:"required"`
	Category domain.TemplateCategory `json:"category" binding:"required,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT PAYROLL TAX"`
	Lines    []TemplateLineRequest   `json:"lines" binding:"required,min=2,dive"`
}

// UpdateTemplateRequest defines the payload for editing a journal template.
// Nil fields are left unchanged; a non-nil Lines replaces all lines.
type UpdateTemplateRequest struct {
	Name     *string                  `json:"name"`
	Category *domain.TemplateCategory `json:"category" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT PAYROLL TAX"`
	IsActive *bool                    `json:"isActive"`
	Lines    *[]TemplateLineRequest   `json:"lines" binding:"omitempty,min=2,dive"`
}

// PreviewTemplateRequest defines the payload for a dry-run template execution.
type PreviewTemplateRequest struct {
	Amount           decimal.Decimal            `json:"amount" binding:"required"`
	Variables        map[string]decimal.Decimal `json:"variables"`
	AccountOverrides []AccountOverride          `json:"accountOverrides"`
}

// ListTemplatesParams defines query parameters for listing templates.
type ListTemplatesParams struct {
	Category   string `form:"category" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT PAYROLL TAX"`
	ActiveOnly bool   `form:"activeOnly"`
	Limit      int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

// TemplateLineResponse defines the data returned for a template line.
type TemplateLineResponse struct {
	LineID    string `json:"lineID"`
	AccountID string `json:"accountID"`
	Position  string `json:"position"`
	Formula   string `json:"formula"`
	LineOrder int    `json:"lineOrder"`
}

// TemplateResponse defines the data returned for a journal template.
type TemplateResponse struct {
	TemplateID string                 `json:"templateID"`
	Name       string                 `json:"name"`
	Category   string                 `json:"category"`
	IsActive   bool                   `json:"isActive"`
	UsageCount int64                  `json:"usageCount"`
	LastUsedAt *time.Time             `json:"lastUsedAt,omitempty"`
	Lines      []TemplateLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	CreatedBy  string                 `json:"createdBy"`
}

// ListTemplatesResponse wraps a page of templates.
type ListTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// PreviewLineResponse defines one computed line of a template preview.
type PreviewLineResponse struct {
	AccountID    string          `json:"accountID"`
	Position     string          `json:"position"`
	Formula      string          `json:"formula"`
	Amount       decimal.Decimal `json:"amount"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineOrder    int             `json:"lineOrder"`
}

// PreviewTemplateResponse defines the result of a dry-run template execution.
type PreviewTemplateResponse struct {
	Lines       []PreviewLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Balanced    bool                  `json:"balanced"`
}

// ToTemplateLineResponse converts a domain.TemplateLine to TemplateLineResponse DTO.
func ToTemplateLineResponse(l *domain.TemplateLine) TemplateLineResponse {
	return TemplateLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		Position:  string(l.Position),
		Formula:   l.Formula,
		LineOrder: l.LineOrder,
	}
}

// ToTemplateResponse converts a domain.JournalTemplate to TemplateResponse DTO.
func ToTemplateResponse(t *domain.JournalTemplate) TemplateResponse {
	lines := make([]TemplateLineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = ToTemplateLineResponse(&l)
	}
	return TemplateResponse{
		TemplateID: t.TemplateID,
		Name:       t.Name,
		Category:   string(t.Category),
		IsActive:   t.IsActive,
		UsageCount: t.UsageCount,
		LastUsedAt: t.LastUsedAt,
		Lines:      lines,
		CreatedAt:  t.CreatedAt,
		CreatedBy:  t.CreatedBy,
	}
}

// ToTemplateResponses converts a slice of domain.JournalTemplate to []TemplateResponse.
func ToTemplateResponses(templates []domain.JournalTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		responses[i] = ToTemplateResponse(&t)
	}
	return responses
}
