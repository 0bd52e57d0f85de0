package usecase

import (
	"fmt"

	"github.com/stockroom/backend/internal/domain"
)

// Row outcome messages
const (
	msgMissingFields = "Missing required fields (SKU, Product Name, Category)"
	msgNegative      = "Quantity and Price must be non-negative"
	msgNotFound      = "Product not found - skipped (update mode)"
	msgExists        = "Product already exists - skipped (add mode)"
	msgUpdated       = "Product updated successfully"
	msgAdded         = "Product added successfully"
)

// ApplyCandidate merges one candidate into the catalog under mode.
//
// Validation rejections and skips are reported in the outcome and leave the
// catalog untouched. The error return is reserved for defects, such as the
// catalog refusing an insert the policy believed was safe.
func ApplyCandidate(c domain.Candidate, cat *domain.Catalog, mode domain.ImportMode) (domain.RowOutcome, error) {
	if outcome, ok := validateCandidate(c); !ok {
		return outcome, nil
	}

	idx := cat.IndexOf(c.SKU)

	switch mode {
	case domain.ModeUpdate:
		if idx < 0 {
			return warning(c, msgNotFound), nil
		}
		return updateExisting(c, cat, idx)
	case domain.ModeAdd:
		if idx >= 0 {
			return warning(c, msgExists), nil
		}
		return insertNew(c, cat)
	case domain.ModeReplace:
		if idx >= 0 {
			return updateExisting(c, cat, idx)
		}
		return insertNew(c, cat)
	}

	return domain.RowOutcome{}, fmt.Errorf("%w: %d", domain.ErrInvalidImportMode, mode)
}

func validateCandidate(c domain.Candidate) (domain.RowOutcome, bool) {
	if c.SKU == "" || c.Name == "" || c.Category == "" {
		sku := c.SKU
		if sku == "" {
			sku = "Unknown"
		}
		return domain.RowOutcome{Row: c.Row, SKU: sku, Status: domain.OutcomeError, Message: msgMissingFields}, false
	}
	if c.Quantity < 0 || c.Price.IsNegative() {
		return domain.RowOutcome{Row: c.Row, SKU: c.SKU, Status: domain.OutcomeError, Message: msgNegative}, false
	}
	return domain.RowOutcome{}, true
}

func updateExisting(c domain.Candidate, cat *domain.Catalog, idx int) (domain.RowOutcome, error) {
	p := cat.At(idx)
	p.Name = c.Name
	p.Category = c.Category
	p.Quantity = c.Quantity
	p.Price = c.Price
	if c.MinStock != 0 {
		p.MinStock = c.MinStock
	}
	if c.Description != "" {
		p.Description = c.Description
	}
	if err := cat.Replace(idx, p); err != nil {
		return domain.RowOutcome{}, err
	}
	return success(c, domain.ActionUpdated, msgUpdated), nil
}

func insertNew(c domain.Candidate, cat *domain.Catalog) (domain.RowOutcome, error) {
	minStock := c.MinStock
	if minStock == 0 {
		minStock = domain.DefaultMinStock
	}
	p := domain.Product{
		SKU:         c.SKU,
		Name:        c.Name,
		Category:    c.Category,
		Quantity:    c.Quantity,
		Price:       c.Price,
		MinStock:    minStock,
		Description: c.Description,
	}
	if err := cat.Append(p); err != nil {
		return domain.RowOutcome{}, err
	}
	return success(c, domain.ActionAdded, msgAdded), nil
}

func warning(c domain.Candidate, msg string) domain.RowOutcome {
	return domain.RowOutcome{Row: c.Row, SKU: c.SKU, Status: domain.OutcomeWarning, Message: msg}
}

func success(c domain.Candidate, action domain.OutcomeAction, msg string) domain.RowOutcome {
	return domain.RowOutcome{Row: c.Row, SKU: c.SKU, Status: domain.OutcomeSuccess, Action: action, Message: msg}
}
