package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// templateHandler handles HTTP requests related to journal templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

// newTemplateHandler creates a new templateHandler.
func newTemplateHandler(ts portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: ts}
}

// registerTemplateRoutes registers routes related to journal templates.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:id", h.getTemplate)
		templates.PUT("/:id", h.updateTemplate)
		templates.DELETE("/:id", h.deactivateTemplate)
		templates.POST("/:id/preview", h.previewTemplate)
	}
}

// createTemplate godoc
// @Summary Create a journal template
// @Description Creates a reusable template whose lines carry accounts and amount formulas
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateTemplateRequest true "Template details"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Template name already exists"
// @Router /templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	template, err := h.templateService.CreateTemplate(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create template")
		return
	}

	logger.Info("Template created successfully", slog.String("template_id", template.TemplateID))
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

// listTemplates godoc
// @Summary List journal templates
// @Description Lists templates, most used first
// @Tags templates
// @Produce  json
// @Param   category query string false "Filter by category" Enums(INCOME, EXPENSE, TRANSFER, ADJUSTMENT, PAYROLL, TAX)
// @Param   activeOnly query bool false "Only active templates"
// @Success 200 {object} dto.ListTemplatesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTemplatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTemplates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.templateService.ListTemplates(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list templates")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTemplate godoc
// @Summary Get a template by ID
// @Description Retrieves a template with its lines
// @Tags templates
// @Produce  json
// @Param   id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), templateID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// updateTemplate godoc
// @Summary Edit a template
// @Description Edits template details or replaces its lines; posted transactions keep their entries
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   id path string true "Template ID"
// @Param   template body dto.UpdateTemplateRequest true "Fields to update"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id} [put]
func (h *templateHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// deactivateTemplate godoc
// @Summary Deactivate a template
// @Description Marks a template inactive so it cannot back new transactions
// @Tags templates
// @Param   id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id} [delete]
func (h *templateHandler) deactivateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	actor := middleware.GetActorFromContext(c)
	if err := h.templateService.DeactivateTemplate(c.Request.Context(), templateID, actor); err != nil {
		respondError(c, logger, err, "Failed to deactivate template")
		return
	}

	c.Status(http.StatusNoContent)
}

// previewTemplate godoc
// @Summary Preview a template execution
// @Description Evaluates all line formulas against an amount without persisting anything
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   id path string true "Template ID"
// @Param   preview body dto.PreviewTemplateRequest true "Amount and variables"
// @Success 200 {object} dto.PreviewTemplateResponse
// @Failure 400 {object} map[string]string "Invalid input format or formula error"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id}/preview [post]
func (h *templateHandler) previewTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	var req dto.PreviewTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.templateService.PreviewTemplate(c.Request.Context(), templateID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to preview template")
		return
	}

	c.JSON(http.StatusOK, preview)
}
