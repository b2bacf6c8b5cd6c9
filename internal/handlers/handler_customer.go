package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

// registerCustomerRoutes registers customer endpoints on the given router group.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PATCH("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse "The created customer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind create customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "The customer"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve customer"
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCustomersResponse "A page of customers"
// @Failure 500 {object} map[string]string "Failed to list customers"
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := pageParams(c)

	customers, next, err := h.customerService.ListCustomers(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.ToCustomerResponses(customers),
		NextToken: next,
	})
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse "The updated customer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to update customer"
// @Router /customers/{customerID} [patch]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind update customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update customer")
		return
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 204 "Customer deleted"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to delete customer"
// @Router /customers/{customerID} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete customer")
		return
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}
