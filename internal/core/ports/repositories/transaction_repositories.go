package repositories

import (
	"context"
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier, including account mappings.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByNumber retrieves a transaction by its human readable number.
	FindTransactionByNumber(ctx context.Context, transactionNumber string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions filtered by status and date range, newest first.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// CreateTransaction persists a new draft transaction and its account mappings.
	// The transaction number is drawn from the gapless sequence inside the same
	// database transaction, so a failed insert never consumes a number.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction replaces the editable fields and account mappings of a draft transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkPosted transitions a transaction to POSTED and persists its journal
	// entries atomically. Journal numbers are drawn inside the same database
	// transaction as the entry inserts.
	MarkPosted(ctx context.Context, transactionID string, entries []domain.JournalEntry, postedBy string, postedAt time.Time) ([]domain.JournalEntry, error)

	// MarkVoided transitions a transaction to VOID and appends the reversal
	// entries atomically. Existing entries are never modified or deleted.
	MarkVoided(ctx context.Context, transactionID string, reversals []domain.JournalEntry, reason domain.VoidReason, voidNotes string, voidedBy string, voidedAt time.Time) ([]domain.JournalEntry, error)

	// DeleteTransaction removes a draft transaction and its account mappings.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// JournalEntryReader defines read operations for posted ledger lines
type JournalEntryReader interface {
	// FindEntriesByTransactionID retrieves all journal entries of a transaction in line order.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// ListEntriesByAccountID retrieves ledger lines for an account within a date range, oldest first.
	ListEntriesByAccountID(ctx context.Context, accountID string, from time.Time, to time.Time, limit int, offset int) ([]domain.JournalEntry, error)
}

// SequenceReader exposes the current sequence counters for inspection.
type SequenceReader interface {
	// FindSequence retrieves the counter row for a sequence type and year, if one exists.
	FindSequence(ctx context.Context, sequenceType string, year int) (*domain.TransactionSequence, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	JournalEntryReader
	SequenceReader
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
