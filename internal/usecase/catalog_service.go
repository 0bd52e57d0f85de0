package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockroom/backend/internal/domain"
)

// CatalogService handles manual catalog maintenance and barcode lookups
type CatalogService struct {
	inventory *Inventory
}

// NewCatalogService creates a catalog service
func NewCatalogService(inventory *Inventory) *CatalogService {
	return &CatalogService{inventory: inventory}
}

// List returns products matching search (name or SKU) and category, in catalog order
func (s *CatalogService) List(search, category string) []domain.ProductView {
	search = strings.TrimSpace(search)
	views := []domain.ProductView{}
	for _, p := range s.inventory.Products() {
		if p.Matches(search, category) {
			views = append(views, domain.NewProductView(p))
		}
	}
	return views
}

// Categories returns the distinct categories in the catalog
func (s *CatalogService) Categories() []string {
	var categories []string
	s.inventory.View(func(cat *domain.Catalog, _ []domain.Activity) {
		categories = cat.Categories()
	})
	return categories
}

// Add creates a product from the manual entry form
func (s *CatalogService) Add(ctx context.Context, user string, in domain.ProductInput) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	if p.MinStock <= 0 {
		p.MinStock = domain.DefaultMinStock
	}

	err = s.inventory.Mutate(ctx, func(cat *domain.Catalog) (string, error) {
		if err := cat.Append(p); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s added new product: %s (%s)", user, p.Name, p.SKU), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites the product identified by sku. A zero MinStock keeps the current value.
func (s *CatalogService) Update(ctx context.Context, user, sku string, in domain.ProductInput) (*domain.Product, error) {
	in.SKU = sku
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}

	err = s.inventory.Mutate(ctx, func(cat *domain.Catalog) (string, error) {
		i := cat.IndexOf(sku)
		if i < 0 {
			return "", domain.ErrProductNotFound
		}
		if p.MinStock <= 0 {
			p.MinStock = cat.At(i).MinStock
		}
		if err := cat.Replace(i, p); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s updated product: %s (%s)", user, p.Name, sku), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product identified by sku
func (s *CatalogService) Delete(ctx context.Context, user, sku string) error {
	return s.inventory.Mutate(ctx, func(cat *domain.Catalog) (string, error) {
		removed, err := cat.Remove(sku)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s deleted product: %s (%s)", user, removed.Name, sku), nil
	})
}

// Scan looks up a product by scanned barcode (SKU)
func (s *CatalogService) Scan(ctx context.Context, user, sku string) (*domain.ProductView, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: enter a SKU to scan", domain.ErrInvalidRequest)
	}

	var (
		p     domain.Product
		found bool
	)
	s.inventory.View(func(cat *domain.Catalog, _ []domain.Activity) {
		p, found = cat.Get(sku)
	})
	if !found {
		return nil, domain.ErrProductNotFound
	}

	s.inventory.RecordActivity(ctx, fmt.Sprintf("%s scanned product: %s (%s)", user, p.Name, sku))

	view := domain.NewProductView(p)
	return &view, nil
}

// productFromInput validates the manual entry form
func productFromInput(in domain.ProductInput) (domain.Product, error) {
	p := domain.Product{
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		MinStock:    in.MinStock,
		Description: strings.TrimSpace(in.Description),
	}
	if p.SKU == "" || p.Name == "" || p.Category == "" || in.Quantity == nil || in.Price == nil {
		return p, fmt.Errorf("%w: please fill in all required fields", domain.ErrInvalidRequest)
	}
	p.Quantity = *in.Quantity
	p.Price = *in.Price
	if p.Quantity < 0 || p.Price.IsNegative() {
		return p, fmt.Errorf("%w: quantity and price must be non-negative", domain.ErrInvalidRequest)
	}
	return p, nil
}
