package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain"
)

const (
	recentActivityLimit = 10
	stockChartLimit     = 5
)

// ReportService derives dashboard and report panels from the inventory
type ReportService struct {
	inventory *Inventory
}

// NewReportService creates a report service
func NewReportService(inventory *Inventory) *ReportService {
	return &ReportService{inventory: inventory}
}

// Dashboard summarizes the catalog
func (s *ReportService) Dashboard() domain.Dashboard {
	var d domain.Dashboard
	s.inventory.View(func(cat *domain.Catalog, activities []domain.Activity) {
		products := cat.Records()

		d.TotalProducts = len(products)
		d.TotalValue = decimal.Zero
		d.CategoryCount = len(cat.Categories())
		d.StockChart = []domain.StockPoint{}
		for i, p := range products {
			if p.IsLowStock() {
				d.LowStockCount++
			}
			d.TotalValue = d.TotalValue.Add(p.TotalValue())
			if i < stockChartLimit {
				d.StockChart = append(d.StockChart, domain.StockPoint{Name: p.Name, Quantity: p.Quantity})
			}
		}
		d.RecentActivity = domain.RecentActivities(activities, recentActivityLimit)
	})
	return d
}

// Reports builds the low stock, category and stock movement panels
func (s *ReportService) Reports() domain.Reports {
	r := domain.Reports{
		LowStock:       []domain.Product{},
		CategoryCounts: []domain.CategoryCount{},
		CategoryValues: []domain.CategoryValue{},
	}
	s.inventory.View(func(cat *domain.Catalog, activities []domain.Activity) {
		position := make(map[string]int)
		for _, p := range cat.Records() {
			if p.IsLowStock() {
				r.LowStock = append(r.LowStock, p)
			}
			i, ok := position[p.Category]
			if !ok {
				i = len(r.CategoryCounts)
				position[p.Category] = i
				r.CategoryCounts = append(r.CategoryCounts, domain.CategoryCount{Category: p.Category})
				r.CategoryValues = append(r.CategoryValues, domain.CategoryValue{Category: p.Category, Value: decimal.Zero})
			}
			r.CategoryCounts[i].Count++
			r.CategoryValues[i].Value = r.CategoryValues[i].Value.Add(p.TotalValue())
		}
		r.StockMovement = domain.RecentActivities(stockMovements(activities), recentActivityLimit)
	})
	return r
}

// Activities returns the activity log, newest first
func (s *ReportService) Activities(limit int) []domain.Activity {
	log := s.inventory.Activities()
	if limit <= 0 || limit > len(log) {
		limit = len(log)
	}
	return domain.RecentActivities(log, limit)
}

func stockMovements(activities []domain.Activity) []domain.Activity {
	var out []domain.Activity
	for _, a := range activities {
		if strings.Contains(a.Message, "added") ||
			strings.Contains(a.Message, "updated") ||
			strings.Contains(a.Message, "deleted") {
			out = append(out, a)
		}
	}
	return out
}
