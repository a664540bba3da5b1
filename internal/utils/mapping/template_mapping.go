package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelTemplate converts a domain JournalTemplate to its row shape.
// Lines are persisted separately.
func ToModelTemplate(d domain.JournalTemplate) models.JournalTemplate {
	return models.JournalTemplate{
		TemplateID:  d.TemplateID,
		Name:        d.Name,
		Category:    string(d.Category),
		IsActive:    d.IsActive,
		UsageCount:  d.UsageCount,
		LastUsedAt:  d.LastUsedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTemplate converts a journal_templates row to the domain type.
func ToDomainTemplate(m models.JournalTemplate) domain.JournalTemplate {
	return domain.JournalTemplate{
		TemplateID:  m.TemplateID,
		Name:        m.Name,
		Category:    domain.TemplateCategory(m.Category),
		IsActive:    m.IsActive,
		UsageCount:  m.UsageCount,
		LastUsedAt:  m.LastUsedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTemplateLine converts a domain TemplateLine to its row shape.
func ToModelTemplateLine(d domain.TemplateLine) models.TemplateLine {
	return models.TemplateLine{
		LineID:     d.LineID,
		TemplateID: d.TemplateID,
		AccountID:  d.AccountID,
		Position:   string(d.Position),
		Formula:    d.Formula,
		LineOrder:  d.LineOrder,
	}
}

// ToDomainTemplateLine converts a journal_template_lines row to the domain type.
func ToDomainTemplateLine(m models.TemplateLine) domain.TemplateLine {
	return domain.TemplateLine{
		LineID:     m.LineID,
		TemplateID: m.TemplateID,
		AccountID:  m.AccountID,
		Position:   domain.JournalPosition(m.Position),
		Formula:    m.Formula,
		LineOrder:  m.LineOrder,
	}
}
