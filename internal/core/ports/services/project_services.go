package services

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a project by its ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves a paginated list of projects.
	ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject edits a project's mutable fields.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
