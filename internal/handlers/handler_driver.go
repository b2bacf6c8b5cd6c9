package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// driverHandler handles HTTP requests related to drivers.
type driverHandler struct {
	driverService portssvc.DriverSvcFacade
}

// newDriverHandler creates a new driverHandler.
func newDriverHandler(driverService portssvc.DriverSvcFacade) *driverHandler {
	return &driverHandler{driverService: driverService}
}

// registerDriverRoutes registers driver endpoints on the given router group.
func registerDriverRoutes(rg *gin.RouterGroup, driverService portssvc.DriverSvcFacade) {
	h := newDriverHandler(driverService)

	drivers := rg.Group("/drivers")
	{
		drivers.POST("", h.createDriver)
		drivers.GET("", h.listDrivers)
		drivers.GET("/:driverID", h.getDriver)
		drivers.PATCH("/:driverID", h.updateDriver)
		drivers.DELETE("/:driverID", h.deleteDriver)
	}
}

// pageParams reads the limit and nextToken query parameters shared by the
// registry list endpoints.
func pageParams(c *gin.Context) (int, *string) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}
	return limit, nextToken
}

// createDriver godoc
// @Summary Register a driver
// @Tags drivers
// @Accept json
// @Produce json
// @Param driver body dto.CreateDriverRequest true "Driver details"
// @Success 201 {object} dto.DriverResponse "The created driver"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate national ID or license number"
// @Failure 500 {object} map[string]string "Failed to create driver"
// @Router /drivers [post]
func (h *driverHandler) createDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind create driver request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create driver")
		return
	}

	logger.Info("Driver created", slog.String("driver_id", driver.DriverID))
	c.JSON(http.StatusCreated, dto.ToDriverResponse(driver))
}

// getDriver godoc
// @Summary Get a driver
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 200 {object} dto.DriverResponse "The driver"
// @Failure 404 {object} map[string]string "Driver not found"
// @Failure 500 {object} map[string]string "Failed to retrieve driver"
// @Router /drivers/{driverID} [get]
func (h *driverHandler) getDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	driverID := c.Param("driverID")

	driver, err := h.driverService.GetDriverByID(c.Request.Context(), driverID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve driver")
		return
	}

	c.JSON(http.StatusOK, dto.ToDriverResponse(driver))
}

// listDrivers godoc
// @Summary List drivers
// @Tags drivers
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDriversResponse "A page of drivers"
// @Failure 500 {object} map[string]string "Failed to list drivers"
// @Router /drivers [get]
func (h *driverHandler) listDrivers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := pageParams(c)

	drivers, next, err := h.driverService.ListDrivers(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list drivers")
		return
	}

	c.JSON(http.StatusOK, dto.ListDriversResponse{
		Drivers:   dto.ToDriverResponses(drivers),
		NextToken: next,
	})
}

// updateDriver godoc
// @Summary Update a driver
// @Tags drivers
// @Accept json
// @Produce json
// @Param driverID path string true "Driver ID"
// @Param driver body dto.UpdateDriverRequest true "Fields to update"
// @Success 200 {object} dto.DriverResponse "The updated driver"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Driver not found"
// @Failure 500 {object} map[string]string "Failed to update driver"
// @Router /drivers/{driverID} [patch]
func (h *driverHandler) updateDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	driverID := c.Param("driverID")

	var req dto.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind update driver request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), driverID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update driver")
		return
	}

	logger.Info("Driver updated", slog.String("driver_id", driverID))
	c.JSON(http.StatusOK, dto.ToDriverResponse(driver))
}

// deleteDriver godoc
// @Summary Delete a driver
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 204 "Driver deleted"
// @Failure 404 {object} map[string]string "Driver not found"
// @Failure 500 {object} map[string]string "Failed to delete driver"
// @Router /drivers/{driverID} [delete]
func (h *driverHandler) deleteDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	driverID := c.Param("driverID")

	if err := h.driverService.DeleteDriver(c.Request.Context(), driverID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete driver")
		return
	}

	logger.Info("Driver deleted", slog.String("driver_id", driverID))
	c.Status(http.StatusNoContent)
}
