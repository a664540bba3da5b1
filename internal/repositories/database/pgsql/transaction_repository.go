package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/accounting"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/mapping"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/numbering"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction and journal entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_number, template_id, transaction_date, amount, description, reference_number, notes, status, project_id, posted_at, posted_by, voided_at, voided_by, void_reason, void_notes, created_at, created_by, last_updated_at, last_updated_by`
const journalEntryColumns = `entry_id, transaction_id, journal_number, entry_date, account_id, debit_amount, credit_amount, description, project_id, is_reversal, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.TemplateID,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.ReferenceNumber,
		&m.Notes,
		&m.Status,
		&m.ProjectID,
		&m.PostedAt,
		&m.PostedBy,
		&m.VoidedAt,
		&m.VoidedBy,
		&m.VoidReason,
		&m.VoidNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.JournalNumber,
		&m.EntryDate,
		&m.AccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Description,
		&m.ProjectID,
		&m.IsReversal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockTransactionStatus reads a transaction's status under FOR UPDATE so that
// concurrent lifecycle transitions on the same transaction serialize.
func lockTransactionStatus(ctx context.Context, tx pgx.Tx, transactionID string) (models.TransactionStatus, error) {
	var status models.TransactionStatus
	query := `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, transactionID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	return status, nil
}

// CreateTransaction persists a new draft transaction and its account mappings.
// The transaction number is drawn inside the same database transaction as the
// insert, so a failure here never consumes a number.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	year := txn.TransactionDate.Year()
	seq, err := nextSequenceNumber(ctx, tx, domain.SequenceTransaction, numbering.TransactionPrefix, year)
	if err != nil {
		return nil, err
	}
	txn.TransactionNumber = numbering.TransactionNumber(year, seq)

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.TransactionNumber,
		m.TemplateID,
		m.TransactionDate,
		m.Amount,
		m.Description,
		m.ReferenceNumber,
		m.Notes,
		m.Status,
		m.ProjectID,
		m.PostedAt,
		m.PostedBy,
		m.VoidedAt,
		m.VoidedBy,
		m.VoidReason,
		m.VoidNotes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, m.TransactionNumber)
		}
		return nil, fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := insertAccountMappings(ctx, tx, txn.AccountMappings); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

func insertAccountMappings(ctx context.Context, tx pgx.Tx, mappings []domain.AccountMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_account_mappings (mapping_id, transaction_id, template_line_id, account_id)
		VALUES ($1, $2, $3, $4);
	`
	for _, am := range mappings {
		mm := mapping.ToModelAccountMapping(am)
		batch.Queue(query, mm.MappingID, mm.TransactionID, mm.TemplateLineID, mm.AccountID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert account mappings: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the editable fields and account mappings of a draft transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockTransactionStatus(ctx, tx, txn.TransactionID)
	if err != nil {
		return err
	}
	if status != models.StatusDraft {
		return fmt.Errorf("%w: only draft transactions can be edited", apperrors.ErrConflict)
	}

	m := mapping.ToModelTransaction(txn)
	updateQuery := `
		UPDATE transactions
		SET transaction_date = $2, amount = $3, description = $4, reference_number = $5,
		    notes = $6, project_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.TransactionID,
		m.TransactionDate,
		m.Amount,
		m.Description,
		m.ReferenceNumber,
		m.Notes,
		m.ProjectID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_account_mappings WHERE transaction_id = $1;`, m.TransactionID); err != nil {
		return fmt.Errorf("failed to clear account mappings of transaction %s: %w", m.TransactionID, err)
	}
	if err := insertAccountMappings(ctx, tx, txn.AccountMappings); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkPosted transitions a DRAFT transaction to POSTED and persists its journal
// entries in one database transaction. The journal number is drawn under the
// same transaction, so a balance failure rolls the counter back and the
// committed numbering stays gapless.
func (r *PgxTransactionRepository) MarkPosted(ctx context.Context, transactionID string, entries []domain.JournalEntry, postedBy string, postedAt time.Time) ([]domain.JournalEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no journal entries to post", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockTransactionStatus(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if status != models.StatusDraft {
		return nil, fmt.Errorf("%w: only draft transactions can be posted", apperrors.ErrConflict)
	}

	if err := accounting.ValidateBalanced(entries); err != nil {
		return nil, err
	}

	year := entries[0].EntryDate.Year()
	seq, err := nextSequenceNumber(ctx, tx, domain.SequenceJournal, numbering.JournalPrefix, year)
	if err != nil {
		return nil, err
	}
	journalNumber := numbering.JournalNumber(year, seq)
	for i := range entries {
		entries[i].JournalNumber = numbering.LineNumber(journalNumber, i+1)
	}

	if err := insertJournalEntries(ctx, tx, entries); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE transactions
		SET status = $2, posted_at = $3, posted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, transactionID, models.StatusPosted, postedAt, postedBy); err != nil {
		return nil, fmt.Errorf("failed to mark transaction %s posted: %w", transactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkVoided transitions a POSTED transaction to VOID and appends reversal
// entries under a fresh journal number. Original entries are never touched.
func (r *PgxTransactionRepository) MarkVoided(ctx context.Context, transactionID string, reversals []domain.JournalEntry, reason domain.VoidReason, voidNotes string, voidedBy string, voidedAt time.Time) ([]domain.JournalEntry, error) {
	if len(reversals) == 0 {
		return nil, fmt.Errorf("%w: no reversal entries to append", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockTransactionStatus(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if status != models.StatusPosted {
		return nil, fmt.Errorf("%w: only posted transactions can be voided", apperrors.ErrConflict)
	}

	if err := accounting.ValidateBalanced(reversals); err != nil {
		return nil, err
	}

	year := reversals[0].EntryDate.Year()
	seq, err := nextSequenceNumber(ctx, tx, domain.SequenceJournal, numbering.JournalPrefix, year)
	if err != nil {
		return nil, err
	}
	journalNumber := numbering.JournalNumber(year, seq)
	for i := range reversals {
		reversals[i].JournalNumber = numbering.LineNumber(journalNumber, i+1)
	}

	if err := insertJournalEntries(ctx, tx, reversals); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE transactions
		SET status = $2, voided_at = $3, voided_by = $4, void_reason = $5, void_notes = $6,
		    last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, transactionID, models.StatusVoid, voidedAt, voidedBy, string(reason), voidNotes); err != nil {
		return nil, fmt.Errorf("failed to mark transaction %s voided: %w", transactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return reversals, nil
}

func insertJournalEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.TransactionID,
			m.JournalNumber,
			m.EntryDate,
			m.AccountID,
			m.DebitAmount,
			m.CreditAmount,
			m.Description,
			m.ProjectID,
			m.IsReversal,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert journal entries: %w", err)
	}
	return nil
}

// DeleteTransaction removes a draft transaction and its account mappings.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockTransactionStatus(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if status != models.StatusDraft {
		return fmt.Errorf("%w: only draft transactions can be deleted", apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_account_mappings WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete account mappings of transaction %s: %w", transactionID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID, including account mappings.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return r.findTransaction(ctx, query, transactionID)
}

// FindTransactionByNumber retrieves a transaction by its human readable number.
func (r *PgxTransactionRepository) FindTransactionByNumber(ctx context.Context, transactionNumber string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_number = $1;`
	return r.findTransaction(ctx, query, transactionNumber)
}

func (r *PgxTransactionRepository) findTransaction(ctx context.Context, query string, arg any) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	mappings, err := r.findAccountMappings(ctx, m.TransactionID)
	if err != nil {
		return nil, err
	}

	txn := mapping.ToDomainTransaction(*m)
	txn.AccountMappings = mappings
	return &txn, nil
}

func (r *PgxTransactionRepository) findAccountMappings(ctx context.Context, transactionID string) ([]domain.AccountMapping, error) {
	query := `
		SELECT mapping_id, transaction_id, template_line_id, account_id
		FROM transaction_account_mappings
		WHERE transaction_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account mappings of transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var mappings []domain.AccountMapping
	for rows.Next() {
		var m models.AccountMapping
		if err := rows.Scan(&m.MappingID, &m.TransactionID, &m.TemplateLineID, &m.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan account mapping row: %w", err)
		}
		mappings = append(mappings, mapping.ToDomainAccountMapping(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account mapping rows: %w", err)
	}

	return mappings, nil
}

// ListTransactions retrieves transactions filtered by status and date range, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{limit, offset}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.TemplateID != "" {
		args = append(args, filter.TemplateID)
		query += fmt.Sprintf(` AND template_id = $%d`, len(args))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		query += fmt.Sprintf(` AND project_id = $%d`, len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(` AND transaction_date >= $%d`, len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(` AND transaction_date <= $%d`, len(args))
	}
	query += ` ORDER BY transaction_date DESC, transaction_number DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return txns, nil
}

// FindEntriesByTransactionID retrieves all journal entries of a transaction in line order.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE transaction_id = $1 ORDER BY journal_number;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// ListEntriesByAccountID retrieves ledger lines for an account within a date range, oldest first.
func (r *PgxTransactionRepository) ListEntriesByAccountID(ctx context.Context, accountID string, from time.Time, to time.Time, limit int, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE account_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, journal_number
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

func collectJournalEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// FindSequence retrieves the counter row for a sequence type and year, if one exists.
func (r *PgxTransactionRepository) FindSequence(ctx context.Context, sequenceType string, year int) (*domain.TransactionSequence, error) {
	query := `
		SELECT sequence_type, prefix, year, last_number
		FROM transaction_sequences
		WHERE sequence_type = $1 AND year = $2;
	`
	var m models.TransactionSequence
	err := r.Pool.QueryRow(ctx, query, sequenceType, year).Scan(&m.SequenceType, &m.Prefix, &m.Year, &m.LastNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sequence %s/%d: %w", sequenceType, year, err)
	}

	seq := domain.TransactionSequence{
		SequenceType: m.SequenceType,
		Prefix:       m.Prefix,
		Year:         m.Year,
		LastNumber:   m.LastNumber,
	}
	return &seq, nil
}
