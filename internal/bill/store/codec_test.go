package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/bill/store"
)

func TestItemsCodec(t *testing.T) {
	tests := []struct {
		name  string
		items []bill.Item
	}{
		{name: "empty", items: []bill.Item{}},
		{
			name: "preserves order and precision",
			items: []bill.Item{
				{Name: "Widget", Quantity: 2, Price: 9.99, Total: 19.98},
				{Name: "Café crème", Quantity: 0.1, Price: 0.2, Total: 0.020000000000000004},
				{Name: "Widget", Quantity: -1, Price: 9.99, Total: -9.99},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := store.EncodeItems(tt.items)
			require.NoError(t, err)

			decoded, err := store.DecodeItems(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.items, decoded)
		})
	}
}

func TestEncodeItems_Format(t *testing.T) {
	encoded, err := store.EncodeItems([]bill.Item{{Name: "Widget", Quantity: 2, Price: 1.5, Total: 3}})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"name":"Widget","quantity":2,"price":1.5,"total":3}]`, encoded)
}

func TestEncodeItems_NilIsEmptyArray(t *testing.T) {
	encoded, err := store.EncodeItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}

func TestDecodeItems_Malformed(t *testing.T) {
	_, err := store.DecodeItems("[('Widget', 2.0, 9.99, 19.98)]")
	assert.Error(t, err)
}
