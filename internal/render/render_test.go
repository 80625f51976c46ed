package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/currency"
)

func TestCartRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := NewCartRenderer(currency.INR).Render(&buf, domain.Snapshot{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, EmptyCartText)
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "Items: 0")
	assert.Contains(t, out, "Total: ₹ 0")
	assert.NotContains(t, out, "NaN")
}

func TestCartRenderer_Items(t *testing.T) {
	var buf bytes.Buffer

	rose := domain.LineItem{ID: uuid.New(), Name: "Rose", Price: 100}
	lily := domain.LineItem{ID: uuid.New(), Name: "Lily", Price: 150}

	err := NewCartRenderer(currency.INR).Render(&buf, domain.Snapshot{Items: []domain.LineItem{rose, lily}})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, EmptyCartText)
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "Items: 2")
	assert.Contains(t, out, "Rose")
	assert.Contains(t, out, "Lily")
	assert.Contains(t, out, rose.ID.String())
	assert.Contains(t, out, "Total: ₹ 250")
	assert.Contains(t, out, " 1. Rose  ₹ 100")
	assert.Contains(t, out, " 2. Lily  ₹ 150")
	assert.NotContains(t, out, "NaN")
	assert.Less(t, strings.Index(out, "Rose"), strings.Index(out, "Lily"))
}

func TestNotifier(t *testing.T) {
	tests := []struct {
		name      string
		kind      port.NotificationKind
		message   string
		wantLevel zapcore.Level
	}{
		{name: "success", kind: port.NotifySuccess, message: MsgAdded("Rose"), wantLevel: zapcore.DebugLevel},
		{name: "info", kind: port.NotifyInfo, message: MsgRemoved("Rose"), wantLevel: zapcore.DebugLevel},
		{name: "error", kind: port.NotifyError, message: MsgEmptyCart, wantLevel: zapcore.WarnLevel},
		{name: "unknown kind falls back to info", kind: "other", message: "hello", wantLevel: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			core, logs := observer.New(zapcore.DebugLevel)

			NewNotifier(&buf, zap.New(core)).Notify(tt.kind, tt.message)

			assert.Contains(t, buf.String(), tt.message)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.message, entry.ContextMap()["message"])
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Added Rose to cart!", MsgAdded("Rose"))
	assert.Equal(t, "Removed Lily from cart", MsgRemoved("Lily"))
	assert.Equal(t, "Order placed successfully and saved to Google Drive!", MsgOrderSaved("Google Drive"))
	assert.Equal(t, "Order placed but failed to save to Google Drive. Please try again.", MsgOrderNotSaved("Google Drive"))
}

func TestRenderProducts(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		var buf bytes.Buffer
		products := []catalog.Product{
			{Name: "Rose", Price: 100, Section: "flowers"},
			{Name: "Peony", Price: 300, Section: "fresh-picks"},
		}

		require.NoError(t, RenderProducts(&buf, products, currency.INR))

		out := buf.String()
		assert.Contains(t, out, "Rose")
		assert.Contains(t, out, "Rose   ₹ 100")
		assert.Contains(t, out, "Peony  ₹ 300")
		assert.NotContains(t, out, "NaN")
		assert.Contains(t, out, "fresh-picks")
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderProducts(&buf, nil, currency.INR))
		assert.Contains(t, buf.String(), NoProductsText)
	})
}
