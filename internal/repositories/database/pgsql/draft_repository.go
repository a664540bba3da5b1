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
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDraftRepository struct {
	pool *pgxpool.Pool
}

// newPgxDraftRepository creates a new repository for captured draft transactions.
func newPgxDraftRepository(pool *pgxpool.Pool) portsrepo.DraftRepositoryFacade {
	return &PgxDraftRepository{pool: pool}
}

var _ portsrepo.DraftRepositoryFacade = (*PgxDraftRepository)(nil)

const draftColumns = `draft_id, merchant_name, amount, transaction_date, source_reference, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDraft(row pgx.Row) (*models.DraftTransaction, error) {
	var m models.DraftTransaction
	err := row.Scan(
		&m.DraftID,
		&m.MerchantName,
		&m.Amount,
		&m.TransactionDate,
		&m.SourceReference,
		&m.Status,
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

// SaveDraft inserts a captured draft.
func (r *PgxDraftRepository) SaveDraft(ctx context.Context, draft domain.DraftTransaction) error {
	m := mapping.ToModelDraftTransaction(draft)

	query := `
		INSERT INTO draft_transactions (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.DraftID,
		m.MerchantName,
		m.Amount,
		m.TransactionDate,
		m.SourceReference,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", m.DraftID, err)
	}
	return nil
}

// UpdateDraftStatus moves a draft to CONVERTED or DISMISSED.
func (r *PgxDraftRepository) UpdateDraftStatus(ctx context.Context, draftID string, status domain.DraftStatus, updatedBy string) error {
	query := `
		UPDATE draft_transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE draft_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, draftID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update draft %s status: %w", draftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDraftByID retrieves a draft by its ID.
func (r *PgxDraftRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.DraftTransaction, error) {
	query := `SELECT ` + draftColumns + ` FROM draft_transactions WHERE draft_id = $1;`

	m, err := scanDraft(r.pool.QueryRow(ctx, query, draftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft by ID %s: %w", draftID, err)
	}

	d := mapping.ToDomainDraftTransaction(*m)
	return &d, nil
}

// ListDrafts retrieves drafts filtered by status, newest first.
func (r *PgxDraftRepository) ListDrafts(ctx context.Context, status domain.DraftStatus, limit int, offset int) ([]domain.DraftTransaction, error) {
	query := `SELECT ` + draftColumns + ` FROM draft_transactions`
	args := []any{limit, offset}
	if status != "" {
		query += ` WHERE status = $3`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []domain.DraftTransaction
	for rows.Next() {
		m, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		drafts = append(drafts, mapping.ToDomainDraftTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft rows: %w", err)
	}

	return drafts, nil
}
