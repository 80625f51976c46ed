package repository

import (
	"context"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"sync"
)

// memoryKV keeps entries for the lifetime of the process.
type memoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKV() port.KVStore {
	return &memoryKV{entries: make(map[string]string)}
}

func (r *memoryKV) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (r *memoryKV) Set(ctx context.Context, entries ...domain.Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		r.entries[entry.Key] = entry.Value
	}
	return nil
}

func (r *memoryKV) Close() error {
	return nil
}
