package port

import (
	"context"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// KVStore is a durable string-keyed store.
// Get returns domain.ErrKeyNotFound for absent keys.
// Set writes all entries; backends that can, write them atomically.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, entries ...domain.Entry) error
	Close() error
}
