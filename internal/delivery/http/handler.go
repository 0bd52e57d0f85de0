package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/internal/usecase"
	"github.com/stockroom/backend/pkg/logger"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog      *usecase.CatalogService
	reports      *usecase.ReportService
	spreadsheets *usecase.SpreadsheetService
	auth         *usecase.AuthService
	maxFileSize  int64
}

// HandlerConfig holds configuration for HTTP handlers
type HandlerConfig struct {
	MaxFileSize int64
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	reports *usecase.ReportService,
	spreadsheets *usecase.SpreadsheetService,
	auth *usecase.AuthService,
	config HandlerConfig,
) *Handler {
	return &Handler{
		catalog:      catalog,
		reports:      reports,
		spreadsheets: spreadsheets,
		auth:         auth,
		maxFileSize:  config.MaxFileSize,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stockroom-backend",
		"version": "1.0.0",
	})
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidImportMode),
		errors.Is(err, domain.ErrDecodeFailed),
		errors.Is(err, domain.ErrEmptySpreadsheet):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingHeaders):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Internal errors are logged and not echoed.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}

	body := gin.H{"error": err.Error()}
	var missing *domain.MissingHeadersError
	if errors.As(err, &missing) {
		fields := make([]string, len(missing.Fields))
		for i, f := range missing.Fields {
			fields[i] = f.Title()
		}
		body["missing"] = fields
	}
	c.JSON(status, body)
}
