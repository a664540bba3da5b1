package domain

import "time"

// FiscalPeriodStatus is the lifecycle state of an accounting month.
// OPEN -> MONTH_CLOSED -> TAX_FILED, in that order only.
type FiscalPeriodStatus string

const (
	PeriodOpen        FiscalPeriodStatus = "OPEN"
	PeriodMonthClosed FiscalPeriodStatus = "MONTH_CLOSED"
	PeriodTaxFiled    FiscalPeriodStatus = "TAX_FILED"
)

// FiscalPeriod is an accounting month bucket. Postings are accepted only
// while the period is OPEN.
type FiscalPeriod struct {
	PeriodID      string             `json:"periodID"` // Primary Key (UUID)
	Year          int                `json:"year"`
	Month         int                `json:"month"` // 1..12
	Status        FiscalPeriodStatus `json:"status"`
	Notes         string             `json:"notes"`
	MonthClosedAt *time.Time         `json:"monthClosedAt"`
	MonthClosedBy string             `json:"monthClosedBy"`
	TaxFiledAt    *time.Time         `json:"taxFiledAt"`
	TaxFiledBy    string             `json:"taxFiledBy"`
	AuditFields
}

// IsOpen reports whether the period accepts new postings.
func (p *FiscalPeriod) IsOpen() bool { return p.Status == PeriodOpen }

// CanCloseMonth reports whether the month-close transition is legal.
func (p *FiscalPeriod) CanCloseMonth() bool { return p.Status == PeriodOpen }

// CanFileTax reports whether the tax-filing transition is legal.
func (p *FiscalPeriod) CanFileTax() bool { return p.Status == PeriodMonthClosed }
