package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
)

// projectService manages the optional cost-tracking dimension on transactions.
type projectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject persists a new project.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Project created",
		slog.String("project_id", project.ProjectID), slog.String("name", project.Name), slog.String("user_id", creatorUserID))
	return &project, nil
}

// UpdateProject edits a project's mutable fields.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	project.LastUpdatedAt = now
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Project updated",
		slog.String("project_id", projectID), slog.String("user_id", requestingUserID))
	return project, nil
}

// GetProjectByID retrieves a project by its ID.
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

// ListProjects retrieves a paginated list of projects.
func (s *projectService) ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.projectRepo.ListProjects(ctx, params.ActiveOnly, limit, params.Offset)
}
