package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: req.AccountCode,
		AccountName: req.AccountName,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account created",
		slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode), slog.String("user_id", creatorUserID))
	return &account, nil
}

// UpdateAccount edits an account's mutable fields. The code and type are
// fixed at creation; deactivation hides an account from new postings without
// orphaning historical entries.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account updated",
		slog.String("account_id", accountID), slog.String("user_id", requestingUserID))
	return account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	return s.accountRepo.ListAccounts(ctx, params.ActiveOnly, limit, params.Offset)
}
