package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row shape.
// Entries and account mappings are persisted separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		TransactionNumber: d.TransactionNumber,
		TemplateID:        d.TemplateID,
		TransactionDate:   d.TransactionDate,
		Amount:            d.Amount,
		Description:       d.Description,
		ReferenceNumber:   d.ReferenceNumber,
		Notes:             d.Notes,
		Status:            models.TransactionStatus(d.Status),
		ProjectID:         d.ProjectID,
		PostedAt:          d.PostedAt,
		PostedBy:          d.PostedBy,
		VoidedAt:          d.VoidedAt,
		VoidedBy:          d.VoidedBy,
		VoidReason:        string(d.VoidReason),
		VoidNotes:         d.VoidNotes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a transactions row to the domain aggregate.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		TemplateID:        m.TemplateID,
		TransactionDate:   m.TransactionDate,
		Amount:            m.Amount,
		Description:       m.Description,
		ReferenceNumber:   m.ReferenceNumber,
		Notes:             m.Notes,
		Status:            domain.TransactionStatus(m.Status),
		ProjectID:         m.ProjectID,
		PostedAt:          m.PostedAt,
		PostedBy:          m.PostedBy,
		VoidedAt:          m.VoidedAt,
		VoidedBy:          m.VoidedBy,
		VoidReason:        domain.VoidReason(m.VoidReason),
		VoidNotes:         m.VoidNotes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountMapping converts a domain AccountMapping to its row shape.
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		MappingID:      d.MappingID,
		TransactionID:  d.TransactionID,
		TemplateLineID: d.TemplateLineID,
		AccountID:      d.AccountID,
	}
}

// ToDomainAccountMapping converts an account mapping row to the domain type.
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		MappingID:      m.MappingID,
		TransactionID:  m.TransactionID,
		TemplateLineID: m.TemplateLineID,
		AccountID:      m.AccountID,
	}
}

// ToModelJournalEntry converts a domain JournalEntry to its row shape.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		JournalNumber: d.JournalNumber,
		EntryDate:     d.EntryDate,
		AccountID:     d.AccountID,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		Description:   d.Description,
		ProjectID:     d.ProjectID,
		IsReversal:    d.IsReversal,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a journal_entries row to the domain type.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		JournalNumber: m.JournalNumber,
		EntryDate:     m.EntryDate,
		AccountID:     m.AccountID,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		Description:   m.Description,
		ProjectID:     m.ProjectID,
		IsReversal:    m.IsReversal,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of journal entry rows.
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
