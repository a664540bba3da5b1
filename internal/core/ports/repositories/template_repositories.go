package repositories

import (
	"context"
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// TemplateReader defines read operations for journal template data
type TemplateReader interface {
	// FindTemplateByID retrieves a template with its lines in line order.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error)

	// ListTemplates retrieves templates, optionally filtered by category and active flag.
	ListTemplates(ctx context.Context, category domain.TemplateCategory, activeOnly bool, limit int, offset int) ([]domain.JournalTemplate, error)
}

// TemplateWriter defines write operations for journal template data
type TemplateWriter interface {
	// SaveTemplate persists a template and its lines atomically, replacing any existing lines.
	SaveTemplate(ctx context.Context, template domain.JournalTemplate) error

	// RecordTemplateUsage bumps usage_count and last_used_at for a template.
	RecordTemplateUsage(ctx context.Context, templateID string, usedAt time.Time) error

	// DeactivateTemplate marks a template inactive without touching its lines.
	DeactivateTemplate(ctx context.Context, templateID string, updatedBy string, updatedAt time.Time) error
}

// TemplateRepositoryFacade combines all template-related repository interfaces
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}

// TemplateRepositoryWithTx extends TemplateRepositoryFacade with transaction capabilities
type TemplateRepositoryWithTx interface {
	TemplateRepositoryFacade
	TransactionManager
}
