package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to its row shape.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:      d.PeriodID,
		Year:          d.Year,
		Month:         d.Month,
		Status:        string(d.Status),
		Notes:         d.Notes,
		MonthClosedAt: d.MonthClosedAt,
		MonthClosedBy: d.MonthClosedBy,
		TaxFiledAt:    d.TaxFiledAt,
		TaxFiledBy:    d.TaxFiledBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a fiscal_periods row to the domain type.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:      m.PeriodID,
		Year:          m.Year,
		Month:         m.Month,
		Status:        domain.FiscalPeriodStatus(m.Status),
		Notes:         m.Notes,
		MonthClosedAt: m.MonthClosedAt,
		MonthClosedBy: m.MonthClosedBy,
		TaxFiledAt:    m.TaxFiledAt,
		TaxFiledBy:    m.TaxFiledBy,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
