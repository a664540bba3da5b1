package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// CreateFiscalPeriodRequest defines the payload for opening a fiscal period row.
type CreateFiscalPeriodRequest struct {
	Year  int    `json:"year" binding:"required,min=2000,max=2100"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Notes string `json:"notes"`
}

// CloseMonthRequest defines the payload for closing a fiscal month.
type CloseMonthRequest struct {
	Notes string `json:"notes"`
}

// FileTaxRequest defines the payload for marking a period's taxes as filed.
type FileTaxRequest struct {
	Notes string `json:"notes"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID      string     `json:"periodID"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	MonthClosedAt *time.Time `json:"monthClosedAt,omitempty"`
	MonthClosedBy string     `json:"monthClosedBy,omitempty"`
	TaxFiledAt    *time.Time `json:"taxFiledAt,omitempty"`
	TaxFiledBy    string     `json:"taxFiledBy,omitempty"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to FiscalPeriodResponse DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:      p.PeriodID,
		Year:          p.Year,
		Month:         p.Month,
		Status:        string(p.Status),
		Notes:         p.Notes,
		MonthClosedAt: p.MonthClosedAt,
		MonthClosedBy: p.MonthClosedBy,
		TaxFiledAt:    p.TaxFiledAt,
		TaxFiledBy:    p.TaxFiledBy,
	}
}

// ToFiscalPeriodResponses converts a slice of domain.FiscalPeriod to []FiscalPeriodResponse.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	responses := make([]FiscalPeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = ToFiscalPeriodResponse(&p)
	}
	return responses
}
