package services

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its journal entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListEntriesByAccount retrieves the ledger lines touching one account, oldest first.
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListAccountEntriesParams) (*dto.ListAccountEntriesResponse, error)

	// GetSequenceStatus reports the numbering counters for a year.
	GetSequenceStatus(ctx context.Context, year int) ([]domain.TransactionSequence, error)
}

// TransactionWriterSvc defines lifecycle operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction validates a template execution and persists a DRAFT transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction edits a DRAFT transaction. Non-draft transactions are rejected.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// PostTransaction executes the template, verifies balance and fiscal period,
	// and writes the journal entries atomically.
	PostTransaction(ctx context.Context, transactionID string, req dto.PostTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// VoidTransaction appends reversal entries and marks the transaction VOID.
	VoidTransaction(ctx context.Context, transactionID string, req dto.VoidTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a DRAFT transaction.
	DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
