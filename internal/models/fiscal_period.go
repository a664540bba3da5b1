package models

import "time"

// FiscalPeriod is the row shape of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID      string     `json:"periodID"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	MonthClosedAt *time.Time `json:"monthClosedAt"`
	MonthClosedBy string     `json:"monthClosedBy"`
	TaxFiledAt    *time.Time `json:"taxFiledAt"`
	TaxFiledBy    string     `json:"taxFiledBy"`
	AuditFields
}
