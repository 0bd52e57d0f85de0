package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportSpreadsheet applies an uploaded workbook (form field "file").
// ?mode= is update, add or replace; it defaults to update.
func (h *Handler) ImportSpreadsheet(c *gin.Context) {
	mode, err := domain.ParseImportMode(c.DefaultQuery("mode", "update"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.readUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.spreadsheets.Import(c.Request.Context(), currentSession(c).Username, data, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// PreviewSpreadsheet summarizes an uploaded workbook without applying it
func (h *Handler) PreviewSpreadsheet(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	preview, err := h.spreadsheets.Preview(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ExportSpreadsheet downloads the catalog as a workbook
func (h *Handler) ExportSpreadsheet(c *gin.Context) {
	filename, data, err := h.spreadsheets.Export(c.Request.Context(), currentSession(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}

	sendWorkbook(c, filename, data)
}

// DownloadTemplate downloads the import template
func (h *Handler) DownloadTemplate(c *gin.Context) {
	data, err := h.spreadsheets.Template()
	if err != nil {
		respondError(c, err)
		return
	}

	sendWorkbook(c, usecase.TemplateFilename, data)
}

func (h *Handler) readUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: please select a file to import", domain.ErrInvalidRequest)
	}
	if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrFileTooLarge, h.maxFileSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return io.ReadAll(f)
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
