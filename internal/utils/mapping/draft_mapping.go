package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelDraftTransaction converts a domain DraftTransaction to its row shape.
func ToModelDraftTransaction(d domain.DraftTransaction) models.DraftTransaction {
	return models.DraftTransaction{
		DraftID:         d.DraftID,
		MerchantName:    d.MerchantName,
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		SourceReference: d.SourceReference,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDraftTransaction converts a draft_transactions row to the domain type.
func ToDomainDraftTransaction(m models.DraftTransaction) domain.DraftTransaction {
	return domain.DraftTransaction{
		DraftID:         m.DraftID,
		MerchantName:    m.MerchantName,
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		SourceReference: m.SourceReference,
		Status:          domain.DraftStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
