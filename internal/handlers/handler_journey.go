package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// journeyHandler handles HTTP requests related to journeys.
type journeyHandler struct {
	journeyService portssvc.JourneySvcFacade
	files          portsrepo.FileStore
}

// newJourneyHandler creates a new journeyHandler.
func newJourneyHandler(journeyService portssvc.JourneySvcFacade, files portsrepo.FileStore) *journeyHandler {
	return &journeyHandler{
		journeyService: journeyService,
		files:          files,
	}
}

// registerJourneyRoutes registers journey endpoints on the given router group.
func registerJourneyRoutes(rg *gin.RouterGroup, journeyService portssvc.JourneySvcFacade, files portsrepo.FileStore) {
	h := newJourneyHandler(journeyService, files)

	journeys := rg.Group("/journeys")
	{
		journeys.POST("", h.createJourney)
		journeys.GET("", h.listJourneys)
		journeys.GET("/stats", h.getJourneyStats)
		journeys.GET("/:journeyID", h.getJourney)
		journeys.PATCH("/:journeyID", h.updateJourney)
		journeys.DELETE("/:journeyID", h.deleteJourney)
		journeys.POST("/:journeyID/installments", h.addInstallment)
		journeys.POST("/:journeyID/expenses", h.addExpense)
	}

	// Stored proof files are served under a separate prefix to keep the
	// journey ID segment free of wildcards.
	rg.GET("/files/*path", h.downloadFile)
}

// isMultipart reports whether the request carries multipart form data.
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindJourneyPayload decodes the request body into out. Multipart clients
// send the JSON body in the "data" form field with files alongside; JSON
// clients send it directly. Both paths run the same struct validation.
func bindJourneyPayload(c *gin.Context, out any) error {
	if !isMultipart(c) {
		return c.ShouldBindJSON(out)
	}
	raw := c.Request.FormValue("data")
	if raw == "" {
		return fmt.Errorf("multipart request is missing the data field")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(out)
}

// saveUpload stores the multipart file under field and returns its
// attachment reference, or nil when the field is absent.
func (h *journeyHandler) saveUpload(c *gin.Context, field string) (*dto.AttachmentInput, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	path, err := h.files.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		return nil, err
	}
	return &dto.AttachmentInput{
		Filename: fh.Filename,
		Path:     path,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
	}, nil
}

// attachCreateUploads stores the files of a multipart create request and
// wires their references into the request DTO. Field naming follows the
// upload convention: payProof, installmentProof_<i>, expenseReceipt_<i>.
func (h *journeyHandler) attachCreateUploads(c *gin.Context, req *dto.CreateJourneyRequest) error {
	att, err := h.saveUpload(c, "payProof")
	if err != nil {
		return err
	}
	if att != nil {
		req.Pay.Attachment = att
	}
	for i := range req.Pay.Installments {
		att, err := h.saveUpload(c, fmt.Sprintf("installmentProof_%d", i))
		if err != nil {
			return err
		}
		if att != nil {
			req.Pay.Installments[i].Attachment = att
		}
	}
	for i := range req.Expenses {
		att, err := h.saveUpload(c, fmt.Sprintf("expenseReceipt_%d", i))
		if err != nil {
			return err
		}
		if att != nil {
			req.Expenses[i].Attachment = att
		}
	}
	return nil
}

// attachUpdateUploads does the same for a partial update request; only
// sections present in the body are considered.
func (h *journeyHandler) attachUpdateUploads(c *gin.Context, req *dto.UpdateJourneyRequest) error {
	if req.Pay != nil {
		att, err := h.saveUpload(c, "payProof")
		if err != nil {
			return err
		}
		if att != nil {
			req.Pay.Attachment = att
		}
		if req.Pay.Installments != nil {
			installments := *req.Pay.Installments
			for i := range installments {
				att, err := h.saveUpload(c, fmt.Sprintf("installmentProof_%d", i))
				if err != nil {
					return err
				}
				if att != nil {
					installments[i].Attachment = att
				}
			}
		}
	}
	if req.Expenses != nil {
		expenses := *req.Expenses
		for i := range expenses {
			att, err := h.saveUpload(c, fmt.Sprintf("expenseReceipt_%d", i))
			if err != nil {
				return err
			}
			if att != nil {
				expenses[i].Attachment = att
			}
		}
	}
	return nil
}

// createJourney godoc
// @Summary Create a journey
// @Description Creates a journey with its payment ledger and expenses. Accepts JSON or multipart form data with the JSON body in the "data" field and proof files alongside.
// @Tags journeys
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param journey body dto.CreateJourneyRequest true "Journey details"
// @Success 201 {object} dto.JourneyResponse "The created journey"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Payment state conflict"
// @Failure 500 {object} map[string]string "Failed to create journey"
// @Router /journeys [post]
func (h *journeyHandler) createJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJourneyRequest
	if err := bindJourneyPayload(c, &req); err != nil {
		logger.Error("Failed to bind create journey request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if isMultipart(c) {
		if err := h.attachCreateUploads(c, &req); err != nil {
			respondServiceError(c, logger, err, "Failed to store uploaded file")
			return
		}
	}

	journey, err := h.journeyService.CreateJourney(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journey")
		return
	}

	logger.Info("Journey created", slog.String("journey_id", journey.JourneyID))
	c.JSON(http.StatusCreated, dto.ToJourneyResponse(journey))
}

// getJourney godoc
// @Summary Get a journey
// @Description Retrieves a journey with its payment ledger, expenses and derived balance
// @Tags journeys
// @Produce json
// @Param journeyID path string true "Journey ID"
// @Success 200 {object} dto.JourneyResponse "The journey"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journey"
// @Router /journeys/{journeyID} [get]
func (h *journeyHandler) getJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	journey, err := h.journeyService.GetJourneyByID(c.Request.Context(), journeyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journey")
		return
	}

	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// listJourneys godoc
// @Summary List journeys
// @Description Lists journeys newest first with filters and token pagination
// @Tags journeys
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Param search query string false "Matches cargo, notes and cities"
// @Param status query string false "started or completed"
// @Param truckId query string false "Filter by truck"
// @Param driverId query string false "Filter by driver"
// @Param customerId query string false "Filter by customer"
// @Param paidOption query string false "full or installment"
// @Param startDate query string false "Earliest journey date (YYYY-MM-DD)"
// @Param endDate query string false "Latest journey date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJourneysResponse "A page of journeys"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journeys"
// @Router /journeys [get]
func (h *journeyHandler) listJourneys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJourneysParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind list journeys query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	journeys, nextToken, err := h.journeyService.ListJourneys(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journeys")
		return
	}

	c.JSON(http.StatusOK, dto.ListJourneysResponse{
		Journeys:  dto.ToJourneyResponses(journeys),
		NextToken: nextToken,
	})
}

// updateJourney godoc
// @Summary Update a journey
// @Description Applies a partial update. Attachments on stored installments and expenses survive a resend that omits them.
// @Tags journeys
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param journeyID path string true "Journey ID"
// @Param journey body dto.UpdateJourneyRequest true "Fields to update"
// @Success 200 {object} dto.JourneyResponse "The updated journey"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 409 {object} map[string]string "Payment state conflict"
// @Failure 500 {object} map[string]string "Failed to update journey"
// @Router /journeys/{journeyID} [patch]
func (h *journeyHandler) updateJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	var req dto.UpdateJourneyRequest
	if err := bindJourneyPayload(c, &req); err != nil {
		logger.Error("Failed to bind update journey request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if isMultipart(c) {
		if err := h.attachUpdateUploads(c, &req); err != nil {
			respondServiceError(c, logger, err, "Failed to store uploaded file")
			return
		}
	}

	journey, err := h.journeyService.UpdateJourney(c.Request.Context(), journeyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update journey")
		return
	}

	logger.Info("Journey updated", slog.String("journey_id", journey.JourneyID))
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// deleteJourney godoc
// @Summary Delete a journey
// @Tags journeys
// @Produce json
// @Param journeyID path string true "Journey ID"
// @Success 204 "Journey deleted"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 500 {object} map[string]string "Failed to delete journey"
// @Router /journeys/{journeyID} [delete]
func (h *journeyHandler) deleteJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	if err := h.journeyService.DeleteJourney(c.Request.Context(), journeyID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete journey")
		return
	}

	logger.Info("Journey deleted", slog.String("journey_id", journeyID))
	c.Status(http.StatusNoContent)
}

// addInstallment godoc
// @Summary Add an installment
// @Description Appends an installment to the journey's payment ledger. Rejected when the payment option is full or the sum would exceed the agreed total.
// @Tags journeys
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param journeyID path string true "Journey ID"
// @Param installment body dto.AddInstallmentRequest true "Installment details"
// @Success 200 {object} dto.JourneyResponse "The journey with the new installment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 409 {object} map[string]string "Installment exceeds the agreed total"
// @Failure 500 {object} map[string]string "Failed to add installment"
// @Router /journeys/{journeyID}/installments [post]
func (h *journeyHandler) addInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	var req dto.AddInstallmentRequest
	if err := bindJourneyPayload(c, &req); err != nil {
		logger.Error("Failed to bind add installment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if isMultipart(c) {
		att, err := h.saveUpload(c, "proof")
		if err != nil {
			respondServiceError(c, logger, err, "Failed to store uploaded file")
			return
		}
		if att != nil {
			req.Attachment = att
		}
	}

	journey, err := h.journeyService.AddInstallment(c.Request.Context(), journeyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add installment")
		return
	}

	logger.Info("Installment added", slog.String("journey_id", journeyID))
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// addExpense godoc
// @Summary Add an expense
// @Description Appends an expense line to the journey and recomputes its balance
// @Tags journeys
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param journeyID path string true "Journey ID"
// @Param expense body dto.AddExpenseRequest true "Expense details"
// @Success 200 {object} dto.JourneyResponse "The journey with the new expense"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 500 {object} map[string]string "Failed to add expense"
// @Router /journeys/{journeyID}/expenses [post]
func (h *journeyHandler) addExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	var req dto.AddExpenseRequest
	if err := bindJourneyPayload(c, &req); err != nil {
		logger.Error("Failed to bind add expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if isMultipart(c) {
		att, err := h.saveUpload(c, "receipt")
		if err != nil {
			respondServiceError(c, logger, err, "Failed to store uploaded file")
			return
		}
		if att != nil {
			req.Attachment = att
		}
	}

	journey, err := h.journeyService.AddExpense(c.Request.Context(), journeyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add expense")
		return
	}

	logger.Info("Expense added", slog.String("journey_id", journeyID))
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// getJourneyStats godoc
// @Summary Get journey dashboard counters
// @Description Returns totals by status and payment option plus aggregate figures in the canonical currency
// @Tags journeys
// @Produce json
// @Success 200 {object} domain.JourneyStats "Dashboard counters"
// @Failure 500 {object} map[string]string "Failed to compute stats"
// @Router /journeys/stats [get]
func (h *journeyHandler) getJourneyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.journeyService.GetJourneyStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// downloadFile godoc
// @Summary Download a stored proof file
// @Description Streams a payment proof or expense receipt by its stored path
// @Tags journeys
// @Produce octet-stream
// @Param path path string true "Stored file path"
// @Success 200 {file} binary "The file content"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Failed to read file"
// @Router /files/{path} [get]
func (h *journeyHandler) downloadFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	path := strings.TrimPrefix(c.Param("path"), "/")

	rc, err := h.files.Open(c.Request.Context(), path)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read file")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Error("Failed to stream file", slog.String("error", err.Error()), slog.String("path", path))
	}
}
