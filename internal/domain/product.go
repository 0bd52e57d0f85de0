package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMinStock is applied when a product is created without a reorder level
const DefaultMinStock = 10

// Product is a single catalog record, keyed by SKU
type Product struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int             `json:"minStock"`
	Description string          `json:"description"`
}

// TotalValue returns quantity × price
func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// StockStatus classifies a product's quantity against its reorder level
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out-of-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusInStock    StockStatus = "in-stock"
)

// Status returns the stock status of the product
func (p Product) Status() StockStatus {
	switch {
	case p.Quantity == 0:
		return StatusOutOfStock
	case p.Quantity <= p.MinStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsLowStock reports whether quantity is at or below the reorder level
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// Matches reports whether the product matches a free-text search term
// (name or SKU, case-insensitive) and an optional exact category.
func (p Product) Matches(search, category string) bool {
	term := strings.ToLower(search)
	if term != "" &&
		!strings.Contains(strings.ToLower(p.Name), term) &&
		!strings.Contains(strings.ToLower(p.SKU), term) {
		return false
	}
	return category == "" || p.Category == category
}

// Catalog is the ordered set of products. At most one product exists per SKU.
// It is not safe for concurrent use; callers serialize access.
type Catalog struct {
	records []Product
	index   map[string]int
}

// NewCatalog builds a catalog from records in order.
// Returns ErrDuplicateSKU if two records share a SKU.
func NewCatalog(records []Product) (*Catalog, error) {
	c := &Catalog{
		records: make([]Product, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, p := range records {
		if err := c.Append(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.records)
}

// IndexOf returns the position of the product with the given SKU, or -1
func (c *Catalog) IndexOf(sku string) int {
	if i, ok := c.index[sku]; ok {
		return i
	}
	return -1
}

// Get returns the product with the given SKU
func (c *Catalog) Get(sku string) (Product, bool) {
	i := c.IndexOf(sku)
	if i < 0 {
		return Product{}, false
	}
	return c.records[i], true
}

// At returns the product at position i
func (c *Catalog) At(i int) Product {
	return c.records[i]
}

// Append adds a product to the end of the catalog
func (c *Catalog) Append(p Product) error {
	if _, exists := c.index[p.SKU]; exists {
		return ErrDuplicateSKU
	}
	c.index[p.SKU] = len(c.records)
	c.records = append(c.records, p)
	return nil
}

// Replace overwrites the product at position i. The SKU must not change.
func (c *Catalog) Replace(i int, p Product) error {
	if i < 0 || i >= len(c.records) {
		return ErrProductNotFound
	}
	if c.records[i].SKU != p.SKU {
		return ErrSKUMismatch
	}
	c.records[i] = p
	return nil
}

// Remove deletes the product with the given SKU and returns it
func (c *Catalog) Remove(sku string) (Product, error) {
	i := c.IndexOf(sku)
	if i < 0 {
		return Product{}, ErrProductNotFound
	}
	removed := c.records[i]
	c.records = append(c.records[:i], c.records[i+1:]...)
	delete(c.index, sku)
	for j := i; j < len(c.records); j++ {
		c.index[c.records[j].SKU] = j
	}
	return removed, nil
}

// Records returns a copy of the products in catalog order
func (c *Catalog) Records() []Product {
	out := make([]Product, len(c.records))
	copy(out, c.records)
	return out
}

// Categories returns distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.records {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
