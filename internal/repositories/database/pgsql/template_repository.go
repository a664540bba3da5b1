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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for journal template data.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryWithTx {
	return &PgxTemplateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TemplateRepositoryWithTx = (*PgxTemplateRepository)(nil)

const templateColumns = `template_id, name, category, is_active, usage_count, last_used_at, created_at, created_by, last_updated_at, last_updated_by`
const templateLineColumns = `line_id, template_id, account_id, position, formula, line_order`

func scanTemplate(row pgx.Row) (*models.JournalTemplate, error) {
	var m models.JournalTemplate
	err := row.Scan(
		&m.TemplateID,
		&m.Name,
		&m.Category,
		&m.IsActive,
		&m.UsageCount,
		&m.LastUsedAt,
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

// SaveTemplate persists a template and its lines atomically, replacing any existing lines.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.JournalTemplate) error {
	m := mapping.ToModelTemplate(template)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	upsertQuery := `
		INSERT INTO journal_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (template_id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, is_active = EXCLUDED.is_active,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, upsertQuery,
		m.TemplateID,
		m.Name,
		m.Category,
		m.IsActive,
		m.UsageCount,
		m.LastUsedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: template named %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save template %s: %w", m.TemplateID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_template_lines WHERE template_id = $1;`, m.TemplateID); err != nil {
		return fmt.Errorf("failed to clear lines of template %s: %w", m.TemplateID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_template_lines (` + templateLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range template.Lines {
		ml := mapping.ToModelTemplateLine(line)
		batch.Queue(lineQuery, ml.LineID, ml.TemplateID, ml.AccountID, ml.Position, ml.Formula, ml.LineOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines of template %s: %w", m.TemplateID, err)
	}

	return r.Commit(ctx, tx)
}

// RecordTemplateUsage bumps usage_count and last_used_at for a template.
func (r *PgxTemplateRepository) RecordTemplateUsage(ctx context.Context, templateID string, usedAt time.Time) error {
	query := `
		UPDATE journal_templates
		SET usage_count = usage_count + 1, last_used_at = $2
		WHERE template_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, templateID, usedAt)
	if err != nil {
		return fmt.Errorf("failed to record usage of template %s: %w", templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateTemplate marks a template inactive without touching its lines.
func (r *PgxTemplateRepository) DeactivateTemplate(ctx context.Context, templateID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_templates
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE template_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, templateID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate template %s: %w", templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTemplateByID retrieves a template with its lines in line order.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM journal_templates WHERE template_id = $1;`

	m, err := scanTemplate(r.Pool.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find template by ID %s: %w", templateID, err)
	}

	lines, err := r.findLinesByTemplateID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	t := mapping.ToDomainTemplate(*m)
	t.Lines = lines
	return &t, nil
}

func (r *PgxTemplateRepository) findLinesByTemplateID(ctx context.Context, templateID string) ([]domain.TemplateLine, error) {
	query := `SELECT ` + templateLineColumns + ` FROM journal_template_lines WHERE template_id = $1 ORDER BY line_order;`

	rows, err := r.Pool.Query(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of template %s: %w", templateID, err)
	}
	defer rows.Close()

	var lines []domain.TemplateLine
	for rows.Next() {
		var ml models.TemplateLine
		if err := rows.Scan(&ml.LineID, &ml.TemplateID, &ml.AccountID, &ml.Position, &ml.Formula, &ml.LineOrder); err != nil {
			return nil, fmt.Errorf("failed to scan template line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainTemplateLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template line rows: %w", err)
	}

	return lines, nil
}

// ListTemplates retrieves templates, optionally filtered by category and active flag.
// Lines are not loaded for list views.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, category domain.TemplateCategory, activeOnly bool, limit int, offset int) ([]domain.JournalTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM journal_templates WHERE 1=1`
	args := []any{limit, offset}
	if category != "" {
		args = append(args, string(category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY usage_count DESC, name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.JournalTemplate
	for rows.Next() {
		m, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, mapping.ToDomainTemplate(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}
