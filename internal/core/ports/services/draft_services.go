package services

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// DraftReaderSvc defines read operations for captured drafts
type DraftReaderSvc interface {
	// GetDraftByID retrieves a captured draft by its ID.
	GetDraftByID(ctx context.Context, draftID string) (*domain.DraftTransaction, error)

	// ListDrafts retrieves a paginated list of captured drafts.
	ListDrafts(ctx context.Context, params dto.ListDraftsParams) ([]domain.DraftTransaction, error)
}

// DraftWriterSvc defines lifecycle operations for captured drafts
type DraftWriterSvc interface {
	// CreateDraft captures a lightweight draft from an external source.
	CreateDraft(ctx context.Context, req dto.CreateDraftRequest, creatorUserID string) (*domain.DraftTransaction, error)

	// ConvertDraft turns a PENDING draft into a DRAFT transaction and marks it CONVERTED.
	ConvertDraft(ctx context.Context, draftID string, req dto.ConvertDraftRequest, requestingUserID string) (*domain.Transaction, error)

	// DismissDraft marks a PENDING draft DISMISSED without creating a transaction.
	DismissDraft(ctx context.Context, draftID string, requestingUserID string) error
}

// DraftSvcFacade combines all draft-related service interfaces
type DraftSvcFacade interface {
	DraftReaderSvc
	DraftWriterSvc
}
