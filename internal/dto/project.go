package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// CreateProjectRequest defines the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest defines the payload for editing a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int  `form:"offset" binding:"omitempty,min=0"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID   string    `json:"projectID"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProjectResponses converts a slice of domain.Project to []ProjectResponse.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = ToProjectResponse(&p)
	}
	return responses
}
