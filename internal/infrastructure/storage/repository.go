package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stockroom/backend/internal/domain"
)

// Blob keys
const (
	KeyProducts    = "warehouse_products"
	KeyActivities  = "warehouse_activities"
	KeyPermissions = "wms_permissions"
)

// Repository persists inventory state as named JSON blobs in a KVStore
type Repository struct {
	store domain.KVStore
	seed  []domain.Product
}

// NewRepository creates a repository over store. A catalog that has never
// been saved loads as seed, which is written back on first load.
func NewRepository(store domain.KVStore, seed []domain.Product) *Repository {
	return &Repository{store: store, seed: seed}
}

// LoadCatalog returns the saved catalog, seeding it on first use
func (r *Repository) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	found, err := r.load(ctx, KeyProducts, &products)
	if err != nil {
		return nil, err
	}
	if !found {
		products = append([]domain.Product(nil), r.seed...)
		if err := r.SaveCatalog(ctx, products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// SaveCatalog replaces the saved catalog
func (r *Repository) SaveCatalog(ctx context.Context, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return r.save(ctx, KeyProducts, products)
}

// LoadActivities returns the saved activity log
func (r *Repository) LoadActivities(ctx context.Context) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	if _, err := r.load(ctx, KeyActivities, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// SaveActivities replaces the saved activity log
func (r *Repository) SaveActivities(ctx context.Context, activities []domain.Activity) error {
	if activities == nil {
		activities = []domain.Activity{}
	}
	return r.save(ctx, KeyActivities, activities)
}

// LoadPermissions returns the saved permission matrix, or the defaults
func (r *Repository) LoadPermissions(ctx context.Context) (domain.PermissionMatrix, error) {
	var matrix domain.PermissionMatrix
	found, err := r.load(ctx, KeyPermissions, &matrix)
	if err != nil {
		return nil, err
	}
	if !found || matrix == nil {
		return domain.DefaultPermissions(), nil
	}
	return matrix, nil
}

// SavePermissions replaces the saved permission matrix
func (r *Repository) SavePermissions(ctx context.Context, matrix domain.PermissionMatrix) error {
	return r.save(ctx, KeyPermissions, matrix)
}

// ResetPermissions removes the saved matrix so the defaults apply
func (r *Repository) ResetPermissions(ctx context.Context) error {
	return r.store.Delete(ctx, KeyPermissions)
}

func (r *Repository) load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, data)
}
