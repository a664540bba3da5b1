package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

// newProjectHandler creates a new projectHandler.
func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// registerProjectRoutes registers routes related to projects.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
	}
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project that transactions can be tagged with
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 409 {object} map[string]string "Project name already exists"
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	project, err := h.projectService.CreateProject(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Lists projects available for transaction tagging
// @Tags projects
// @Produce  json
// @Param   activeOnly query bool false "Only active projects"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListProjects", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

// getProject godoc
// @Summary Get a project by ID
// @Description Retrieves a single project
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Edit a project
// @Description Edits a project's name, description or active flag
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}
