package services

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// TemplateReaderSvc defines read operations for journal templates
type TemplateReaderSvc interface {
	// GetTemplateByID retrieves a template with its lines.
	GetTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error)

	// ListTemplates retrieves a paginated list of templates.
	ListTemplates(ctx context.Context, params dto.ListTemplatesParams) (*dto.ListTemplatesResponse, error)
}

// TemplateWriterSvc defines write operations for journal templates
type TemplateWriterSvc interface {
	// CreateTemplate validates line formulas and persists a template with its lines.
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creatorUserID string) (*domain.JournalTemplate, error)

	// UpdateTemplate edits template details or replaces its lines.
	UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, requestingUserID string) (*domain.JournalTemplate, error)

	// DeactivateTemplate marks a template inactive so it cannot back new transactions.
	DeactivateTemplate(ctx context.Context, templateID string, requestingUserID string) error
}

// TemplatePreviewSvc defines dry-run execution of a template
type TemplatePreviewSvc interface {
	// PreviewTemplate evaluates all line formulas against an amount without persisting anything.
	PreviewTemplate(ctx context.Context, templateID string, req dto.PreviewTemplateRequest) (*dto.PreviewTemplateResponse, error)
}

// TemplateSvcFacade combines all template-related service interfaces
type TemplateSvcFacade interface {
	TemplateReaderSvc
	TemplateWriterSvc
	TemplatePreviewSvc
}
