package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the landing page summary
func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Dashboard())
}

// Reports returns the report panels
func (h *Handler) Reports(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Reports())
}

// Activities returns the activity log, newest first. ?limit= caps the result.
func (h *Handler) Activities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	c.JSON(http.StatusOK, gin.H{"activities": h.reports.Activities(limit)})
}
