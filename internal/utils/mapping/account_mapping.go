package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelAccount converts a domain Account to its row shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		AccountType: string(d.AccountType),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts an accounts row to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
