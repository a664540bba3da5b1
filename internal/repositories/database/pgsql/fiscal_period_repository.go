package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/models"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{pool: pool}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

const fiscalPeriodColumns = `period_id, year, month, status, notes, month_closed_at, month_closed_by, tax_filed_at, tax_filed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalPeriod(row pgx.Row) (*models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.Notes,
		&m.MonthClosedAt,
		&m.MonthClosedBy,
		&m.TaxFiledAt,
		&m.TaxFiledBy,
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

// SavePeriod inserts a fiscal period row.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + fiscalPeriodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PeriodID,
		m.Year,
		m.Month,
		m.Status,
		m.Notes,
		m.MonthClosedAt,
		m.MonthClosedBy,
		m.TaxFiledAt,
		m.TaxFiledBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal period %d-%02d already exists", apperrors.ErrDuplicate, m.Year, m.Month)
		}
		return fmt.Errorf("failed to save fiscal period %d-%02d: %w", m.Year, m.Month, err)
	}
	return nil
}

// UpdatePeriod persists status transitions and close/file audit stamps.
func (r *PgxFiscalPeriodRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		UPDATE fiscal_periods
		SET status = $2, notes = $3, month_closed_at = $4, month_closed_by = $5,
		    tax_filed_at = $6, tax_filed_by = $7, last_updated_at = $8, last_updated_by = $9
		WHERE period_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.PeriodID,
		m.Status,
		m.Notes,
		m.MonthClosedAt,
		m.MonthClosedBy,
		m.TaxFiledAt,
		m.TaxFiledBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fiscal period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPeriod retrieves the fiscal period row for a year and month.
func (r *PgxFiscalPeriodRepository) FindPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE year = $1 AND month = $2;`

	m, err := scanFiscalPeriod(r.pool.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %d-%02d: %w", year, month, err)
	}

	p := mapping.ToDomainFiscalPeriod(*m)
	return &p, nil
}

// ListPeriodsByYear retrieves all period rows of a year in month order.
func (r *PgxFiscalPeriodRepository) ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE year = $1 ORDER BY month;`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods for %d: %w", year, err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}

	return periods, nil
}
