package domain

import (
	"github.com/google/uuid"
	"slices"
)

type LineItem struct {
	ID    uuid.UUID
	Name  string
	Price int64
}

// Snapshot is the cart at one instant. Items are kept in insertion order,
// which is also display order.
type Snapshot struct {
	Items []LineItem
}

// Total is derived from the items on every call.
func (s Snapshot) Total() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Price
	}
	return total
}

func (s Snapshot) Count() int {
	return len(s.Items)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{Items: slices.Clone(s.Items)}
}
