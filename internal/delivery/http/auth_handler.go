package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/internal/domain"
)

// Login handles demo user login
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: please fill in all fields", domain.ErrInvalidRequest))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPermissions returns the role permission matrix
func (h *Handler) GetPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.Permissions())
}

// UpdatePermissions replaces the role permission matrix
func (h *Handler) UpdatePermissions(c *gin.Context) {
	var matrix domain.PermissionMatrix
	if err := c.ShouldBindJSON(&matrix); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	updated, err := h.auth.SetPermissions(c.Request.Context(), currentSession(c).Username, matrix)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ResetPermissions restores the default permission matrix
func (h *Handler) ResetPermissions(c *gin.Context) {
	matrix, err := h.auth.ResetPermissions(c.Request.Context(), currentSession(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}
