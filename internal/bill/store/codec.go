package store

import (
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

type storedItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// EncodeItems serializes items into the text stored in the bills.items column.
func EncodeItems(items []bill.Item) (string, error) {
	stored := make([]storedItem, len(items))
	for i, it := range items {
		stored[i] = storedItem(it)
	}

	b, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}

	return string(b), nil
}

// DecodeItems is the inverse of EncodeItems.
func DecodeItems(s string) ([]bill.Item, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(s), &stored); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	items := make([]bill.Item, len(stored))
	for i, it := range stored {
		items[i] = bill.Item(it)
	}

	return items, nil
}
