package domain

import (
	"context"
	"time"
)

// KVStore is a named-blob store, the persistence layer for all inventory state
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// InventoryRepository persists the catalog and activity log wholesale
type InventoryRepository interface {
	LoadCatalog(ctx context.Context) ([]Product, error)
	SaveCatalog(ctx context.Context, products []Product) error
	LoadActivities(ctx context.Context) ([]Activity, error)
	SaveActivities(ctx context.Context, activities []Activity) error
}

// PermissionRepository persists the role permission matrix
type PermissionRepository interface {
	LoadPermissions(ctx context.Context) (PermissionMatrix, error)
	SavePermissions(ctx context.Context, matrix PermissionMatrix) error
	ResetPermissions(ctx context.Context) error
}

// SpreadsheetCodec reads import files and writes export workbooks
type SpreadsheetCodec interface {
	Decode(data []byte) (Grid, error)
	EncodeInventory(products []Product) ([]byte, error)
	EncodeTemplate() ([]byte, error)
}

// TokenIssuer signs and verifies session tokens
type TokenIssuer interface {
	Issue(session Session) (token string, expiresAt time.Time, err error)
	Verify(token string) (Session, error)
}
