package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain"
)

// MockInventoryRepository is an in-memory domain.InventoryRepository
type MockInventoryRepository struct {
	products      []domain.Product
	activities    []domain.Activity
	saveError     error
	catalogSaves  int
	activitySaves int
}

func NewMockInventoryRepository(products ...domain.Product) *MockInventoryRepository {
	return &MockInventoryRepository{products: products}
}

func (m *MockInventoryRepository) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), m.products...), nil
}

func (m *MockInventoryRepository) SaveCatalog(ctx context.Context, products []domain.Product) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.catalogSaves++
	m.products = append([]domain.Product(nil), products...)
	return nil
}

func (m *MockInventoryRepository) LoadActivities(ctx context.Context) ([]domain.Activity, error) {
	return append([]domain.Activity(nil), m.activities...), nil
}

func (m *MockInventoryRepository) SaveActivities(ctx context.Context, activities []domain.Activity) error {
	m.activitySaves++
	m.activities = append([]domain.Activity(nil), activities...)
	return nil
}

// MockPermissionRepository is an in-memory domain.PermissionRepository
type MockPermissionRepository struct {
	matrix    domain.PermissionMatrix
	saveError error
}

func (m *MockPermissionRepository) LoadPermissions(ctx context.Context) (domain.PermissionMatrix, error) {
	if m.matrix == nil {
		return domain.DefaultPermissions(), nil
	}
	return m.matrix, nil
}

func (m *MockPermissionRepository) SavePermissions(ctx context.Context, matrix domain.PermissionMatrix) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.matrix = matrix
	return nil
}

func (m *MockPermissionRepository) ResetPermissions(ctx context.Context) error {
	m.matrix = nil
	return nil
}

// MockCodec decodes every payload to a fixed grid
type MockCodec struct {
	grid        domain.Grid
	decodeError error
	encoded     []domain.Product
}

func (m *MockCodec) Decode(data []byte) (domain.Grid, error) {
	if m.decodeError != nil {
		return nil, m.decodeError
	}
	return m.grid, nil
}

func (m *MockCodec) EncodeInventory(products []domain.Product) ([]byte, error) {
	m.encoded = products
	return []byte("inventory"), nil
}

func (m *MockCodec) EncodeTemplate() ([]byte, error) {
	return []byte("template"), nil
}

// MockTokenIssuer encodes the session as "username:role"
type MockTokenIssuer struct{}

func (MockTokenIssuer) Issue(session domain.Session) (string, time.Time, error) {
	return session.Username + ":" + string(session.Role), time.Unix(1700000000, 0), nil
}

func (MockTokenIssuer) Verify(token string) (domain.Session, error) {
	user, role, ok := strings.Cut(token, ":")
	if !ok {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return domain.Session{Username: user, Role: domain.Role(role)}, nil
}

var errMockStore = errors.New("store down")

func product(sku, name, category string, quantity int, price string) domain.Product {
	return domain.Product{
		SKU:      sku,
		Name:     name,
		Category: category,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
		MinStock: domain.DefaultMinStock,
	}
}

func newTestInventory(t *testing.T, products ...domain.Product) (*Inventory, *MockInventoryRepository) {
	t.Helper()
	repo := NewMockInventoryRepository(products...)
	inv, err := NewInventory(context.Background(), repo)
	if err != nil {
		t.Fatalf("NewInventory() error = %v", err)
	}
	return inv, repo
}

func newTestCatalog(t *testing.T, products ...domain.Product) *domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog(products)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return cat
}
