package kv

import (
	"context"
	"fmt"

	"github.com/stockroom/backend/internal/domain"
)

// Options selects and configures a store backend
type Options struct {
	Type      string // "memory" or "redis"
	RedisURL  string
	KeyPrefix string
}

// Open returns the configured store and a func that releases it
func Open(ctx context.Context, opts Options) (domain.KVStore, func() error, error) {
	switch opts.Type {
	case "", "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		client, err := NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, opts.KeyPrefix), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store type %q", opts.Type)
}
