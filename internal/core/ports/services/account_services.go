package services

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount edits an account's mutable fields.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
