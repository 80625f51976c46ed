// Package cart owns the shopping cart of one page session and keeps it in a
// durable key/value store.
//
// Every mutation is written through to the store before it returns, so a
// later Open against the same store restores the latest cart. The total is
// derived from the line items and is persisted only for readers that expect
// the "cartTotal" key.
package cart

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
	"slices"
	"sync"
)

type Store struct {
	kv     port.KVStore
	logger *zap.Logger
	prefix string
	newID  func() uuid.UUID

	mu       sync.Mutex
	snapshot domain.Snapshot
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithKeyPrefix namespaces both cart keys, letting several carts share a backend.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// Open creates the session's store and loads the persisted cart.
func Open(ctx context.Context, kv port.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.snapshot = s.Load(ctx)
	return s
}

// Load reads the persisted cart. Absent or malformed data yields an empty
// cart; Load never fails.
func (s *Store) Load(ctx context.Context) domain.Snapshot {
	empty := domain.Snapshot{Items: []domain.LineItem{}}

	rawItems, err := s.kv.Get(ctx, s.itemsKey())
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("cart items unreadable, starting empty", zap.Error(err))
		}
		return empty
	}

	items, err := decodeItems(rawItems, s.newID)
	if err != nil {
		s.logger.Warn("cart items malformed, starting empty", zap.Error(err))
		return empty
	}

	snapshot := domain.Snapshot{Items: items}
	s.checkStoredTotal(ctx, snapshot.Total())

	return snapshot
}

// checkStoredTotal only reports; the derived total always wins.
func (s *Store) checkStoredTotal(ctx context.Context, derived int64) {
	rawTotal, err := s.kv.Get(ctx, s.totalKey())
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("cart total unreadable", zap.Error(err))
		}
		return
	}

	stored, err := decodeTotal(rawTotal)
	if err != nil {
		s.logger.Warn("cart total malformed, using derived total",
			zap.String("stored", rawTotal), zap.Int64("derived", derived))
		return
	}
	if stored != derived {
		s.logger.Warn("cart total drifted, using derived total",
			zap.Int64("stored", stored), zap.Int64("derived", derived))
	}
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot.Clone()
}

// AddItem appends a line. Name and price are not validated.
func (s *Store) AddItem(ctx context.Context, name string, price int64) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.LineItem{ID: s.newID(), Name: name, Price: price}
	s.snapshot.Items = append(s.snapshot.Items, item)

	s.logger.Debug("item added", zap.String("name", name), zap.Int64("price", price), zap.Stringer("id", item.ID))

	return s.persistLocked(ctx)
}

// RemoveItem removes the first line named name. No match is a no-op.
func (s *Store) RemoveItem(ctx context.Context, name string) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, func(item domain.LineItem) bool { return item.Name == name })
}

// RemoveLine removes the line with the given id. Unknown ids are a no-op.
func (s *Store) RemoveLine(ctx context.Context, id uuid.UUID) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, func(item domain.LineItem) bool { return item.ID == id })
}

func (s *Store) removeLocked(ctx context.Context, match func(domain.LineItem) bool) (domain.Snapshot, error) {
	for i, item := range s.snapshot.Items {
		if !match(item) {
			continue
		}

		s.snapshot.Items = slices.Delete(s.snapshot.Items, i, i+1)
		s.logger.Debug("item removed", zap.String("name", item.Name), zap.Stringer("id", item.ID))

		return s.persistLocked(ctx)
	}

	return s.snapshot.Clone(), nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = domain.Snapshot{Items: []domain.LineItem{}}
	s.logger.Debug("cart cleared")

	return s.persistLocked(ctx)
}

// Persist writes the current cart to the store.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.persistLocked(ctx)
	return err
}

// persistLocked keeps the in-memory mutation even when the write fails.
func (s *Store) persistLocked(ctx context.Context) (domain.Snapshot, error) {
	snapshot := s.snapshot.Clone()

	rawItems, err := encodeItems(snapshot.Items)
	if err != nil {
		return snapshot, fmt.Errorf("encodeItems: %w", err)
	}

	err = s.kv.Set(ctx,
		domain.Entry{Key: s.itemsKey(), Value: rawItems},
		domain.Entry{Key: s.totalKey(), Value: encodeTotal(snapshot.Total())},
	)
	if err != nil {
		s.logger.Error("cart not persisted", zap.Error(err))
		return snapshot, fmt.Errorf("kv.Set: %w", err)
	}

	return snapshot, nil
}

func (s *Store) itemsKey() string {
	return s.prefix + ItemsKey
}

func (s *Store) totalKey() string {
	return s.prefix + TotalKey
}
