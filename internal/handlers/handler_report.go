package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests related to financial reports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(reportService portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: reportService}
}

// registerReportRoutes registers report endpoints on the given router group.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.getDailyReport)
		reports.GET("/weekly", h.getWeeklyReport)
		reports.GET("/monthly", h.getMonthlyReport)
		reports.GET("/custom", h.getCustomReport)
		reports.GET("/summary", h.getSummaryReport)
	}
}

// getSummaryReport godoc
// @Summary Get the all-time summary
// @Description Aggregates the whole journey ledger with no date bound
// @Tags reports
// @Produce json
// @Param truckId query string false "Limit to one truck"
// @Param customerId query string false "Limit to one customer"
// @Success 200 {object} domain.Report "The all-time summary"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/summary [get]
func (h *reportHandler) getSummaryReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Error("Failed to bind summary report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportService.GetSummary(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getDailyReport godoc
// @Summary Get a daily report
// @Description Aggregates journeys for one calendar day, today when no date is given
// @Tags reports
// @Produce json
// @Param date query string false "Day to report on (YYYY-MM-DD)"
// @Success 200 {object} domain.Report "The daily report"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/daily [get]
func (h *reportHandler) getDailyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DailyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind daily report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	date := time.Now().UTC()
	if params.Date != nil {
		date = *params.Date
	}

	report, err := h.reportService.GetDailyReport(c.Request.Context(), date, params.ReportFilter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getWeeklyReport godoc
// @Summary Get a weekly report
// @Description Aggregates journeys for one ISO-8601 week
// @Tags reports
// @Produce json
// @Param year query int true "ISO week-numbering year"
// @Param week query int true "ISO week number (1-53)"
// @Success 200 {object} domain.Report "The weekly report"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/weekly [get]
func (h *reportHandler) getWeeklyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.WeeklyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind weekly report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportService.GetWeeklyReport(c.Request.Context(), params.Year, params.Week, params.ReportFilter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getMonthlyReport godoc
// @Summary Get a monthly report
// @Description Aggregates journeys for one calendar month
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.Report "The monthly report"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/monthly [get]
func (h *reportHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind monthly report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportService.GetMonthlyReport(c.Request.Context(), params.Year, time.Month(params.Month), params.ReportFilter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getCustomReport godoc
// @Summary Get a custom range report
// @Description Aggregates journeys for an arbitrary date range, optionally broken down by day, week or month
// @Tags reports
// @Produce json
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param groupBy query string false "day, week or month"
// @Success 200 {object} domain.Report "The custom report"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/custom [get]
func (h *reportHandler) getCustomReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CustomReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind custom report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportService.GetCustomReport(c.Request.Context(), params.StartDate, params.EndDate, params.GroupBy, params.ReportFilter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}
