package cart_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStore_Load(t *testing.T) {
	fixedID := uuid.MustParse("0b6f5a6e-4a52-4a7f-9a0c-3f4b8f7c2d11")

	tests := []struct {
		name      string
		stored    map[string]string
		wantItems []domain.LineItem
		wantTotal int64
		wantWarn  string
	}{
		{
			name:      "absent keys: empty",
			stored:    nil,
			wantItems: []domain.LineItem{},
		},
		{
			name: "items with ids: restored",
			stored: map[string]string{
				cart.ItemsKey: `[{"id":"0b6f5a6e-4a52-4a7f-9a0c-3f4b8f7c2d11","name":"Rose","price":100}]`,
				cart.TotalKey: "100",
			},
			wantItems: []domain.LineItem{{ID: fixedID, Name: "Rose", Price: 100}},
			wantTotal: 100,
		},
		{
			name: "layout without ids: restored with fresh ids",
			stored: map[string]string{
				cart.ItemsKey: `[{"name":"Rose","price":100},{"name":"Lily","price":150}]`,
				cart.TotalKey: "250",
			},
			wantItems: []domain.LineItem{{Name: "Rose", Price: 100}, {Name: "Lily", Price: 150}},
			wantTotal: 250,
		},
		{
			name: "corrupted items: empty",
			stored: map[string]string{
				cart.ItemsKey: `[{"name":"Rose",`,
				cart.TotalKey: "100",
			},
			wantItems: []domain.LineItem{},
			wantWarn:  "cart items malformed, starting empty",
		},
		{
			name: "items not an array: empty",
			stored: map[string]string{
				cart.ItemsKey: `{"name":"Rose","price":100}`,
			},
			wantItems: []domain.LineItem{},
			wantWarn:  "cart items malformed, starting empty",
		},
		{
			name: "price not a number: empty",
			stored: map[string]string{
				cart.ItemsKey: `[{"name":"Rose","price":"cheap"}]`,
			},
			wantItems: []domain.LineItem{},
			wantWarn:  "cart items malformed, starting empty",
		},
		{
			name: "null items: empty",
			stored: map[string]string{
				cart.ItemsKey: `null`,
			},
			wantItems: []domain.LineItem{},
		},
		{
			name: "only total stored: empty",
			stored: map[string]string{
				cart.TotalKey: "500",
			},
			wantItems: []domain.LineItem{},
		},
		{
			name: "malformed total: derived total used",
			stored: map[string]string{
				cart.ItemsKey: `[{"name":"Rose","price":100}]`,
				cart.TotalKey: "NaN",
			},
			wantItems: []domain.LineItem{{Name: "Rose", Price: 100}},
			wantTotal: 100,
			wantWarn:  "cart total malformed, using derived total",
		},
		{
			name: "drifted total: derived total used",
			stored: map[string]string{
				cart.ItemsKey: `[{"name":"Rose","price":100}]`,
				cart.TotalKey: "900",
			},
			wantItems: []domain.LineItem{{Name: "Rose", Price: 100}},
			wantTotal: 100,
			wantWarn:  "cart total drifted, using derived total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			kv := repository.NewMemoryKV()
			for key, value := range tt.stored {
				require.NoError(t, kv.Set(ctx, domain.Entry{Key: key, Value: value}))
			}

			core, logs := observer.New(zap.WarnLevel)
			store := cart.Open(ctx, kv, cart.WithLogger(zap.New(core)))
			snapshot := store.Snapshot()

			assertItems(t, tt.wantItems, snapshot.Items)
			assert.Equal(t, tt.wantTotal, snapshot.Total())
			for _, item := range snapshot.Items {
				assert.NotEqual(t, uuid.Nil, item.ID)
			}
			if len(tt.wantItems) == 1 && tt.wantItems[0].ID != uuid.Nil {
				assert.Equal(t, tt.wantItems[0].ID, snapshot.Items[0].ID)
			}

			if tt.wantWarn != "" {
				assert.Equal(t, 1, logs.FilterMessage(tt.wantWarn).Len())
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}

func TestStore_LoadReadErrorIsEmpty(t *testing.T) {
	ctx := t.Context()
	kv := &failingKV{KVStore: repository.NewMemoryKV(), getErr: errors.New("connection refused")}

	snapshot := cart.Open(ctx, kv).Snapshot()

	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, int64(0), snapshot.Total())
}

func TestStore_LoadRoundTrip(t *testing.T) {
	ctx := t.Context()
	kv := repository.NewMemoryKV()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	next := 0
	store := cart.Open(ctx, kv, cart.WithIDGenerator(func() uuid.UUID {
		id := ids[next]
		next++
		return id
	}))

	_, err := store.AddItem(ctx, "Rose", 100)
	require.NoError(t, err)
	want, err := store.AddItem(ctx, "Lily", 150)
	require.NoError(t, err)

	got := store.Load(ctx)

	assert.Equal(t, want, got)
	assert.Equal(t, ids[0], got.Items[0].ID)
}
