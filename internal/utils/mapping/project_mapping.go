package mapping

import (
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
)

// ToModelProject converts a domain Project to its row shape.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a projects row to the domain type.
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
