package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// truckHandler handles HTTP requests related to trucks.
type truckHandler struct {
	truckService portssvc.TruckSvcFacade
}

// newTruckHandler creates a new truckHandler.
func newTruckHandler(truckService portssvc.TruckSvcFacade) *truckHandler {
	return &truckHandler{truckService: truckService}
}

// registerTruckRoutes registers truck endpoints on the given router group.
func registerTruckRoutes(rg *gin.RouterGroup, truckService portssvc.TruckSvcFacade) {
	h := newTruckHandler(truckService)

	trucks := rg.Group("/trucks")
	{
		trucks.POST("", h.createTruck)
		trucks.GET("", h.listTrucks)
		trucks.GET("/:truckID", h.getTruck)
		trucks.PATCH("/:truckID", h.updateTruck)
		trucks.DELETE("/:truckID", h.deleteTruck)
	}
}

// createTruck godoc
// @Summary Register a truck
// @Tags trucks
// @Accept json
// @Produce json
// @Param truck body dto.CreateTruckRequest true "Truck details"
// @Success 201 {object} dto.TruckResponse "The created truck"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate plate number"
// @Failure 500 {object} map[string]string "Failed to create truck"
// @Router /trucks [post]
func (h *truckHandler) createTruck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind create truck request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	truck, err := h.truckService.CreateTruck(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create truck")
		return
	}

	logger.Info("Truck created", slog.String("truck_id", truck.TruckID))
	c.JSON(http.StatusCreated, dto.ToTruckResponse(truck))
}

// getTruck godoc
// @Summary Get a truck
// @Tags trucks
// @Produce json
// @Param truckID path string true "Truck ID"
// @Success 200 {object} dto.TruckResponse "The truck"
// @Failure 404 {object} map[string]string "Truck not found"
// @Failure 500 {object} map[string]string "Failed to retrieve truck"
// @Router /trucks/{truckID} [get]
func (h *truckHandler) getTruck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	truckID := c.Param("truckID")

	truck, err := h.truckService.GetTruckByID(c.Request.Context(), truckID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve truck")
		return
	}

	c.JSON(http.StatusOK, dto.ToTruckResponse(truck))
}

// listTrucks godoc
// @Summary List trucks
// @Tags trucks
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTrucksResponse "A page of trucks"
// @Failure 500 {object} map[string]string "Failed to list trucks"
// @Router /trucks [get]
func (h *truckHandler) listTrucks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := pageParams(c)

	trucks, next, err := h.truckService.ListTrucks(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list trucks")
		return
	}

	c.JSON(http.StatusOK, dto.ListTrucksResponse{
		Trucks:    dto.ToTruckResponses(trucks),
		NextToken: next,
	})
}

// updateTruck godoc
// @Summary Update a truck
// @Tags trucks
// @Accept json
// @Produce json
// @Param truckID path string true "Truck ID"
// @Param truck body dto.UpdateTruckRequest true "Fields to update"
// @Success 200 {object} dto.TruckResponse "The updated truck"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Truck not found"
// @Failure 500 {object} map[string]string "Failed to update truck"
// @Router /trucks/{truckID} [patch]
func (h *truckHandler) updateTruck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	truckID := c.Param("truckID")

	var req dto.UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind update truck request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	truck, err := h.truckService.UpdateTruck(c.Request.Context(), truckID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update truck")
		return
	}

	logger.Info("Truck updated", slog.String("truck_id", truckID))
	c.JSON(http.StatusOK, dto.ToTruckResponse(truck))
}

// deleteTruck godoc
// @Summary Delete a truck
// @Tags trucks
// @Produce json
// @Param truckID path string true "Truck ID"
// @Success 204 "Truck deleted"
// @Failure 404 {object} map[string]string "Truck not found"
// @Failure 500 {object} map[string]string "Failed to delete truck"
// @Router /trucks/{truckID} [delete]
func (h *truckHandler) deleteTruck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	truckID := c.Param("truckID")

	if err := h.truckService.DeleteTruck(c.Request.Context(), truckID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete truck")
		return
	}

	logger.Info("Truck deleted", slog.String("truck_id", truckID))
	c.Status(http.StatusNoContent)
}
