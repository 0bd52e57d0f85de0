package domain

import "github.com/shopspring/decimal"

// StockPoint is one bar of the dashboard stock chart
type StockPoint struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Dashboard summarizes the catalog for the landing page
type Dashboard struct {
	TotalProducts  int             `json:"totalProducts"`
	LowStockCount  int             `json:"lowStockCount"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	CategoryCount  int             `json:"categoryCount"`
	RecentActivity []Activity      `json:"recentActivity"`
	StockChart     []StockPoint    `json:"stockChart"`
}

// CategoryCount is the number of products in one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryValue is the stock value held in one category
type CategoryValue struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// Reports holds the inventory report panels
type Reports struct {
	LowStock       []Product       `json:"lowStock"`
	CategoryCounts []CategoryCount `json:"categoryCounts"`
	CategoryValues []CategoryValue `json:"categoryValues"`
	StockMovement  []Activity      `json:"stockMovement"`
}

// ProductView is a product annotated with its stock status
type ProductView struct {
	Product
	Status     StockStatus     `json:"status"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// NewProductView annotates p
func NewProductView(p Product) ProductView {
	return ProductView{Product: p, Status: p.Status(), TotalValue: p.TotalValue()}
}

// ProductInput is the manual add/edit form
type ProductInput struct {
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    int              `json:"minStock"`
	Description string           `json:"description"`
}
