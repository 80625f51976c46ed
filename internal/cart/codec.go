package cart

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"strconv"
	"strings"
)

const (
	ItemsKey = "cartItems"
	TotalKey = "cartTotal"
)

// storedItem is the persisted form of a line item. Carts written before
// line ids existed have no "id" field.
type storedItem struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name"`
	Price int64      `json:"price"`
}

func encodeItems(items []domain.LineItem) (string, error) {
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		id := item.ID
		stored = append(stored, storedItem{ID: &id, Name: item.Name, Price: item.Price})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}
	return string(data), nil
}

func decodeItems(raw string, newID func() uuid.UUID) ([]domain.LineItem, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.LineItem, 0, len(stored))
	for _, s := range stored {
		item := domain.LineItem{Name: s.Name, Price: s.Price}
		if s.ID != nil && *s.ID != uuid.Nil {
			item.ID = *s.ID
		} else {
			item.ID = newID()
		}
		items = append(items, item)
	}
	return items, nil
}

func encodeTotal(total int64) string {
	return strconv.FormatInt(total, 10)
}

func decodeTotal(raw string) (int64, error) {
	total, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("strconv.ParseInt: %w", err)
	}
	return total, nil
}
