package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNeedsReorder(t *testing.T) {
	p := NewProduct("P-1", "Milk", decimal.RequireFromString("1.99"), 5, 5)
	assert.True(t, p.NeedsReorder(), "at the threshold")
	assert.Equal(t, 10, p.RestockQuantity())

	p.Ordered = true
	assert.False(t, p.NeedsReorder())

	p.Ordered = false
	p.StockOnHand = 6
	assert.False(t, p.NeedsReorder())
}

func TestNewItemFreezesPrice(t *testing.T) {
	p := NewProduct("P-1", "Milk", decimal.RequireFromString("1.99"), 5, 1)
	item := NewItem(p, 3)
	p.CurrentPrice = decimal.RequireFromString("9.99")
	p.Name = "Oat milk"

	assert.Equal(t, "Milk", item.ProductName)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("1.99")))
	assert.True(t, item.ItemPrice.Equal(decimal.RequireFromString("5.97")))
}

func TestTransactionQuantities(t *testing.T) {
	milk := NewProduct("P-1", "Milk", decimal.NewFromInt(1), 10, 1)
	bread := NewProduct("P-2", "Bread", decimal.NewFromInt(2), 10, 1)

	var txn Transaction
	txn.AddItem(NewItem(bread, 1))
	txn.AddItem(NewItem(milk, 2))
	txn.AddItem(NewItem(bread, 4))

	ids, sums := txn.Quantities()
	assert.Equal(t, []string{"P-2", "P-1"}, ids)
	assert.Equal(t, 5, sums["P-2"])
	assert.Equal(t, 2, sums["P-1"])
	assert.True(t, txn.TotalPrice.Equal(decimal.NewFromInt(12)))
}

func TestTransactionsBetweenIsInclusiveByDay(t *testing.T) {
	m := &Member{}
	for _, ts := range []time.Time{
		time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 3, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
	} {
		m.AddTransaction(Transaction{Date: ts})
	}

	got := m.TransactionsBetween(
		time.Date(2024, 2, 1, 15, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 3, 8, 0, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Date.Day())
	assert.Equal(t, 3, got[1].Date.Day())

	assert.Empty(t, m.TransactionsBetween(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), "reversed range is empty")
}

func TestResultCodeText(t *testing.T) {
	assert.Equal(t, "INVALID_PRODUCT_NAME", InvalidProductName.String())
	assert.Equal(t, "UNKNOWN", ResultCode(42).String())
	assert.True(t, ActionSuccessful.Success())
	assert.False(t, ActionFailed.Success())

	out, err := json.Marshal(map[string]ResultCode{"code": InvalidOrderQuantity})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"INVALID_ORDER_QUANTITY"}`, string(out))

	var decoded map[string]ResultCode
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, InvalidOrderQuantity, decoded["code"])
	assert.Error(t, json.Unmarshal([]byte(`{"code":"NOPE"}`), &decoded))
}
