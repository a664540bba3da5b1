package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// draftHandler handles HTTP requests related to captured drafts.
type draftHandler struct {
	draftService portssvc.DraftSvcFacade
}

// newDraftHandler creates a new draftHandler.
func newDraftHandler(ds portssvc.DraftSvcFacade) *draftHandler {
	return &draftHandler{draftService: ds}
}

// registerDraftRoutes registers routes related to captured drafts.
func registerDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvcFacade) {
	h := newDraftHandler(draftService)

	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.createDraft)
		drafts.GET("", h.listDrafts)
		drafts.GET("/:id", h.getDraft)
		drafts.POST("/:id/convert", h.convertDraft)
		drafts.POST("/:id/dismiss", h.dismissDraft)
	}
}

// createDraft godoc
// @Summary Capture a draft transaction
// @Description Captures a merchant name and amount from an external source for later conversion
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   draft body dto.CreateDraftRequest true "Draft details"
// @Success 201 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Router /drafts [post]
func (h *draftHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	draft, err := h.draftService.CreateDraft(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to capture draft")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

// listDrafts godoc
// @Summary List captured drafts
// @Description Lists captured drafts filtered by status
// @Tags drafts
// @Produce  json
// @Param   status query string false "Filter by status" Enums(PENDING, CONVERTED, DISMISSED)
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /drafts [get]
func (h *draftHandler) listDrafts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDraftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDrafts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	drafts, err := h.draftService.ListDrafts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list drafts")
		return
	}

	c.JSON(http.StatusOK, dto.ToDraftResponses(drafts))
}

// getDraft godoc
// @Summary Get a captured draft by ID
// @Description Retrieves a single captured draft
// @Tags drafts
// @Produce  json
// @Param   id path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} map[string]string "Draft not found"
// @Router /drafts/{id} [get]
func (h *draftHandler) getDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	draftID := c.Param("id")

	draft, err := h.draftService.GetDraftByID(c.Request.Context(), draftID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve draft")
		return
	}

	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// convertDraft godoc
// @Summary Convert a captured draft into a transaction
// @Description Creates a DRAFT transaction from a captured draft and marks the draft CONVERTED
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   id path string true "Draft ID"
// @Param   body body dto.ConvertDraftRequest true "Template and overrides"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Draft or template not found"
// @Failure 409 {object} map[string]string "Draft is not pending"
// @Router /drafts/{id}/convert [post]
func (h *draftHandler) convertDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	draftID := c.Param("id")

	var req dto.ConvertDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.draftService.ConvertDraft(c.Request.Context(), draftID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to convert draft")
		return
	}

	logger.Info("Draft converted successfully",
		slog.String("draft_id", draftID),
		slog.String("transaction_number", txn.TransactionNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// dismissDraft godoc
// @Summary Dismiss a captured draft
// @Description Marks a PENDING draft DISMISSED without creating a transaction
// @Tags drafts
// @Param   id path string true "Draft ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Draft not found"
// @Failure 409 {object} map[string]string "Draft is not pending"
// @Router /drafts/{id}/dismiss [post]
func (h *draftHandler) dismissDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	draftID := c.Param("id")

	actor := middleware.GetActorFromContext(c)
	if err := h.draftService.DismissDraft(c.Request.Context(), draftID, actor); err != nil {
		respondError(c, logger, err, "Failed to dismiss draft")
		return
	}

	c.Status(http.StatusNoContent)
}
