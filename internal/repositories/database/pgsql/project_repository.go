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

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{pool: pool}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (*models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.Description,
		&m.IsActive,
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

// SaveProject inserts a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

// UpdateProject persists changes to a project's mutable fields.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)

	query := `
		UPDATE projects
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE project_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", m.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProjectByID retrieves a project by its ID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`

	m, err := scanProject(r.pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}

	p := mapping.ToDomainProject(*m)
	return &p, nil
}

// ListProjects retrieves projects ordered by name.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, mapping.ToDomainProject(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}
