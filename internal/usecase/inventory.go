package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/pkg/logger"
)

// Inventory owns the catalog and activity log. All mutation goes through
// Mutate, which serializes writers and persists the result once per call.
type Inventory struct {
	mu         sync.Mutex
	repo       domain.InventoryRepository
	catalog    *domain.Catalog
	activities []domain.Activity
	now        func() time.Time
}

// NewInventory loads persisted state from repo
func NewInventory(ctx context.Context, repo domain.InventoryRepository) (*Inventory, error) {
	products, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog, err := domain.NewCatalog(products)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	activities, err := repo.LoadActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	return &Inventory{
		repo:       repo,
		catalog:    catalog,
		activities: activities,
		now:        time.Now,
	}, nil
}

// Mutate runs fn against a working copy of the catalog. If fn succeeds the
// copy is persisted and becomes the live catalog; a non-empty activity
// message returned by fn is appended to the log in the same save. If fn or
// the save fails, the live catalog is unchanged.
func (inv *Inventory) Mutate(ctx context.Context, fn func(cat *domain.Catalog) (activity string, err error)) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	working, err := domain.NewCatalog(inv.catalog.Records())
	if err != nil {
		return err
	}

	activity, err := fn(working)
	if err != nil {
		return err
	}

	if err := inv.repo.SaveCatalog(ctx, working.Records()); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	inv.catalog = working

	if activity != "" {
		inv.appendActivity(ctx, activity)
	}
	return nil
}

// RecordActivity appends one entry to the activity log
func (inv *Inventory) RecordActivity(ctx context.Context, message string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.appendActivity(ctx, message)
}

// appendActivity must be called with mu held. A failed save is logged,
// not returned: the catalog change it describes has already been committed.
func (inv *Inventory) appendActivity(ctx context.Context, message string) {
	inv.activities = domain.AppendActivity(inv.activities, domain.Activity{
		Message:   message,
		Timestamp: inv.now().UTC(),
	})
	if err := inv.repo.SaveActivities(ctx, inv.activities); err != nil {
		logger.Error(ctx, "failed to save activity log", "error", err)
	}
}

// View runs fn with read access to the catalog and activity log.
// fn must not retain or modify either.
func (inv *Inventory) View(fn func(cat *domain.Catalog, activities []domain.Activity)) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	fn(inv.catalog, inv.activities)
}

// Products returns a copy of the catalog in order
func (inv *Inventory) Products() []domain.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.Records()
}

// Activities returns a copy of the activity log, oldest first
func (inv *Inventory) Activities() []domain.Activity {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]domain.Activity(nil), inv.activities...)
}
