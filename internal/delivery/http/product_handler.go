package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/internal/domain"
)

// ListProducts returns the catalog, filtered by ?search= and ?category=
func (h *Handler) ListProducts(c *gin.Context) {
	products := h.catalog.List(c.Query("search"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": h.catalog.Categories(),
	})
}

// CreateProduct adds a product from the manual entry form
func (h *Handler) CreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	p, err := h.catalog.Add(c.Request.Context(), currentSession(c).Username, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.NewProductView(*p))
}

// UpdateProduct edits the product identified by :sku
func (h *Handler) UpdateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), currentSession(c).Username, c.Param("sku"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewProductView(*p))
}

// DeleteProduct removes the product identified by :sku
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), currentSession(c).Username, c.Param("sku")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ScanProduct looks up a product by barcode
func (h *Handler) ScanProduct(c *gin.Context) {
	view, err := h.catalog.Scan(c.Request.Context(), currentSession(c).Username, c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
