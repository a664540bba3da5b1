package repositories

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a project by its unique identifier.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects ordered by name.
	ListProjects(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject inserts a project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject persists changes to a project's mutable fields.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
