package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/internal/infrastructure/kv"
)

func TestLoadCatalog_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewRepository(store, SampleProducts())

	products, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 6)
	assert.Equal(t, "LAP001", products[0].SKU)

	exists, err := store.Exists(ctx, KeyProducts)
	require.NoError(t, err)
	assert.True(t, exists, "seed should be written back")
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemoryStore(), nil)

	want := []domain.Product{
		{SKU: "A1", Name: "Widget", Category: "Cat", Quantity: 5, Price: decimal.RequireFromString("1.10"), MinStock: 10, Description: "small"},
		{SKU: "B2", Name: "Gadget", Category: "Cat", Quantity: 0, Price: decimal.RequireFromString("0.333333333333333333"), MinStock: 3},
	}
	require.NoError(t, repo.SaveCatalog(ctx, want))

	got, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].SKU, got[i].SKU)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Price.Equal(got[i].Price), "price %s != %s", want[i].Price, got[i].Price)
	}
}

func TestSaveCatalog_EmptyIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemoryStore(), SampleProducts())

	require.NoError(t, repo.SaveCatalog(ctx, nil))

	got, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestActivitiesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemoryStore(), nil)

	empty, err := repo.LoadActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveActivities(ctx, []domain.Activity{{Message: "admin logged in as admin", Timestamp: ts}}))

	got, err := repo.LoadActivities(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin logged in as admin", got[0].Message)
	assert.True(t, ts.Equal(got[0].Timestamp))
}

func TestPermissions(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemoryStore(), nil)

	matrix, err := repo.LoadPermissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPermissions(), matrix)

	matrix[domain.RoleWorker][domain.PermImport] = true
	require.NoError(t, repo.SavePermissions(ctx, matrix))

	saved, err := repo.LoadPermissions(ctx)
	require.NoError(t, err)
	assert.True(t, saved.Allows(domain.RoleWorker, domain.PermImport))

	require.NoError(t, repo.ResetPermissions(ctx))
	reset, err := repo.LoadPermissions(ctx)
	require.NoError(t, err)
	assert.False(t, reset.Allows(domain.RoleWorker, domain.PermImport))
}

func TestLoadCatalog_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyProducts, []byte("{not json")))

	_, err := NewRepository(store, nil).LoadCatalog(ctx)
	assert.Error(t, err)
}
