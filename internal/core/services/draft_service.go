package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/shopspring/decimal"
)

// draftService manages lightweight captured drafts (bank feeds, receipts)
// waiting to become real transactions.
type draftService struct {
	draftRepo portsrepo.DraftRepositoryFacade
	txnSvc    portssvc.TransactionWriterSvc
}

// NewDraftService creates a new DraftService.
func NewDraftService(draftRepo portsrepo.DraftRepositoryFacade, txnSvc portssvc.TransactionWriterSvc) portssvc.DraftSvcFacade {
	return &draftService{draftRepo: draftRepo, txnSvc: txnSvc}
}

var _ portssvc.DraftSvcFacade = (*draftService)(nil)

// CreateDraft captures a lightweight draft from an external source.
func (s *draftService) CreateDraft(ctx context.Context, req dto.CreateDraftRequest, creatorUserID string) (*domain.DraftTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: draft amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	draft := domain.DraftTransaction{
		DraftID:         uuid.NewString(),
		MerchantName:    req.MerchantName,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		SourceReference: req.SourceReference,
		Status:          domain.DraftPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.draftRepo.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Draft captured",
		slog.String("draft_id", draft.DraftID), slog.String("merchant", draft.MerchantName), slog.String("user_id", creatorUserID))
	return &draft, nil
}

// ConvertDraft turns a PENDING draft into a DRAFT transaction and marks it
// CONVERTED. The request may override the captured amount and date; the
// merchant name becomes the description unless one is given.
func (s *draftService) ConvertDraft(ctx context.Context, draftID string, req dto.ConvertDraftRequest, requestingUserID string) (*domain.Transaction, error) {
	draft, err := s.draftRepo.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != domain.DraftPending {
		return nil, fmt.Errorf("%w: only pending drafts can be converted", apperrors.ErrConflict)
	}

	amount := draft.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	date := time.Now().UTC()
	if draft.TransactionDate != nil {
		date = *draft.TransactionDate
	}
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}
	description := req.Description
	if description == "" {
		description = draft.MerchantName
	}

	txn, err := s.txnSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		TemplateID:       req.TemplateID,
		TransactionDate:  date,
		Amount:           amount,
		Description:      description,
		ReferenceNumber:  draft.SourceReference,
		ProjectID:        req.ProjectID,
		AccountOverrides: req.AccountOverrides,
		Variables:        req.Variables,
	}, requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.draftRepo.UpdateDraftStatus(ctx, draftID, domain.DraftConverted, requestingUserID); err != nil {
		// The transaction exists; surface the bookkeeping failure loudly.
		middleware.GetLoggerFromCtx(ctx).Error("Draft converted but status update failed",
			slog.String("draft_id", draftID), slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Draft converted",
		slog.String("draft_id", draftID), slog.String("transaction_id", txn.TransactionID), slog.String("user_id", requestingUserID))
	return txn, nil
}

// DismissDraft marks a PENDING draft DISMISSED without creating a transaction.
func (s *draftService) DismissDraft(ctx context.Context, draftID string, requestingUserID string) error {
	draft, err := s.draftRepo.FindDraftByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.Status != domain.DraftPending {
		return fmt.Errorf("%w: only pending drafts can be dismissed", apperrors.ErrConflict)
	}

	if err := s.draftRepo.UpdateDraftStatus(ctx, draftID, domain.DraftDismissed, requestingUserID); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Draft dismissed",
		slog.String("draft_id", draftID), slog.String("user_id", requestingUserID))
	return nil
}

// GetDraftByID retrieves a captured draft by its ID.
func (s *draftService) GetDraftByID(ctx context.Context, draftID string) (*domain.DraftTransaction, error) {
	return s.draftRepo.FindDraftByID(ctx, draftID)
}

// ListDrafts retrieves a paginated list of captured drafts.
func (s *draftService) ListDrafts(ctx context.Context, params dto.ListDraftsParams) ([]domain.DraftTransaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.draftRepo.ListDrafts(ctx, domain.DraftStatus(params.Status), limit, params.Offset)
}
