package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.POST("/:id/post", h.postTransaction)
		transactions.POST("/:id/void", h.voidTransaction)
	}

	rg.GET("/sequences", h.getSequenceStatus)
}

// createTransaction godoc
// @Summary Create a draft transaction
// @Description Creates a DRAFT transaction from a journal template and an amount
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Template, account or project not found"
// @Failure 422 {object} map[string]string "Template execution does not balance"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_number", txn.TransactionNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions filtered by status, template, project and date range
// @Tags transactions
// @Produce  json
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, VOID)
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with its journal entries
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit a draft transaction
// @Description Replaces the editable fields and account overrides of a DRAFT transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a draft transaction
// @Description Deletes a DRAFT transaction. Posted transactions can only be voided.
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	actor := middleware.GetActorFromContext(c)
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// postTransaction godoc
// @Summary Post a draft transaction
// @Description Executes the template and writes balanced journal entries into the ledger
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   body body dto.PostTransactionRequest false "Extra formula variables"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Failure 422 {object} map[string]string "Entries do not balance or fiscal period is closed"
// @Router /transactions/{id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.PostTransactionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.PostTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted successfully", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// voidTransaction godoc
// @Summary Void a posted transaction
// @Description Appends reversal entries and marks the transaction VOID
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   body body dto.VoidTransactionRequest true "Void reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not posted"
// @Failure 422 {object} map[string]string "Fiscal period is closed"
// @Router /transactions/{id}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.VoidTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to void transaction")
		return
	}

	logger.Info("Transaction voided successfully", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getSequenceStatus godoc
// @Summary Read the numbering counters
// @Description Reports the last drawn transaction and journal numbers for a year
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to the current year)"
// @Success 200 {array} dto.SequenceStatusResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Router /sequences [get]
func (h *transactionHandler) getSequenceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: year must be a number"})
			return
		}
		year = parsed
	}

	sequences, err := h.transactionService.GetSequenceStatus(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to read sequence status")
		return
	}

	c.JSON(http.StatusOK, dto.ToSequenceStatusResponses(sequences))
}
