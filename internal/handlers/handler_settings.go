package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests related to application settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// newSettingsHandler creates a new settingsHandler.
func newSettingsHandler(settingsService portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: settingsService}
}

// registerSettingsRoutes registers settings endpoints on the given router group.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/exchange-rates", h.updateExchangeRates)
	}
}

// getSettings godoc
// @Summary Get application settings
// @Description Returns the default exchange rate per supported currency
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Settings "The current settings"
// @Failure 500 {object} map[string]string "Failed to load settings"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// updateExchangeRates godoc
// @Summary Update default exchange rates
// @Description Replaces the default rate of each listed currency
// @Tags settings
// @Accept json
// @Produce json
// @Param rates body dto.UpdateExchangeRatesRequest true "Rates to update"
// @Success 200 {object} domain.Settings "The updated settings"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Failed to update settings"
// @Security BearerAuth
// @Router /settings/exchange-rates [put]
func (h *settingsHandler) updateExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req dto.UpdateExchangeRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind exchange rates body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	settings, err := h.settingsService.UpdateExchangeRates(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
