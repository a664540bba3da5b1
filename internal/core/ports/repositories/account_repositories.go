package repositories

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves accounts for the given IDs, keyed by account ID.
	// Missing IDs yield ErrNotFound.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by account code.
	ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts an account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
