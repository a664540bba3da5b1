package repositories

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// DraftReader defines read operations for captured draft transactions
type DraftReader interface {
	// FindDraftByID retrieves a draft by its unique identifier.
	FindDraftByID(ctx context.Context, draftID string) (*domain.DraftTransaction, error)

	// ListDrafts retrieves drafts filtered by status, newest first.
	ListDrafts(ctx context.Context, status domain.DraftStatus, limit int, offset int) ([]domain.DraftTransaction, error)
}

// DraftWriter defines write operations for captured draft transactions
type DraftWriter interface {
	// SaveDraft inserts a draft.
	SaveDraft(ctx context.Context, draft domain.DraftTransaction) error

	// UpdateDraftStatus moves a draft to CONVERTED or DISMISSED.
	UpdateDraftStatus(ctx context.Context, draftID string, status domain.DraftStatus, updatedBy string) error
}

// DraftRepositoryFacade combines all draft-related repository interfaces
type DraftRepositoryFacade interface {
	DraftReader
	DraftWriter
}
