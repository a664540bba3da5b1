package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalPeriodHandler handles HTTP requests related to fiscal periods.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

// newFiscalPeriodHandler creates a new fiscalPeriodHandler.
func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{periodService: ps}
}

// registerFiscalPeriodRoutes registers routes related to fiscal periods.
func registerFiscalPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(periodService)

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:year/:month", h.getPeriod)
		periods.POST("/:year/:month/close", h.closeMonth)
		periods.POST("/:year/:month/file-tax", h.fileTax)
		periods.POST("/:year/:month/reopen", h.reopenMonth)
	}
}

func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + c.Param("year")})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month: " + c.Param("month")})
		return 0, 0, false
	}
	return year, month, true
}

// createPeriod godoc
// @Summary Open a fiscal period
// @Description Creates an OPEN fiscal period row for a month so it accepts postings
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreateFiscalPeriodRequest true "Year and month"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 409 {object} map[string]string "Period already exists"
// @Router /fiscal-periods [post]
func (h *fiscalPeriodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create fiscal period")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods of a year
// @Description Lists all fiscal period rows of a year in month order
// @Tags fiscal-periods
// @Produce  json
// @Param   year query int true "Year"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Router /fiscal-periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + c.Query("year")})
		return
	}

	periods, err := h.periodService.ListPeriodsByYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to list fiscal periods")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a fiscal period
// @Description Retrieves the fiscal period row for a year and month
// @Tags fiscal-periods
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /fiscal-periods/{year}/{month} [get]
func (h *fiscalPeriodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve fiscal period")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// closeMonth godoc
// @Summary Close a fiscal month
// @Description Transitions an OPEN period to MONTH_CLOSED; closed months reject postings
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month"
// @Param   body body dto.CloseMonthRequest false "Closing notes"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /fiscal-periods/{year}/{month}/close [post]
func (h *fiscalPeriodHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	var req dto.CloseMonthRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actor := middleware.GetActorFromContext(c)
	period, err := h.periodService.CloseMonth(c.Request.Context(), year, month, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to close fiscal month")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// fileTax godoc
// @Summary Mark a month's taxes filed
// @Description Transitions a MONTH_CLOSED period to TAX_FILED; this is final
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month"
// @Param   body body dto.FileTaxRequest false "Filing notes"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /fiscal-periods/{year}/{month}/file-tax [post]
func (h *fiscalPeriodHandler) fileTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	var req dto.FileTaxRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actor := middleware.GetActorFromContext(c)
	period, err := h.periodService.FileTax(c.Request.Context(), year, month, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to file tax for fiscal month")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// reopenMonth godoc
// @Summary Reopen a closed fiscal month
// @Description Transitions a MONTH_CLOSED period back to OPEN; TAX_FILED periods never reopen
// @Tags fiscal-periods
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /fiscal-periods/{year}/{month}/reopen [post]
func (h *fiscalPeriodHandler) reopenMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	actor := middleware.GetActorFromContext(c)
	period, err := h.periodService.ReopenMonth(c.Request.Context(), year, month, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to reopen fiscal month")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
