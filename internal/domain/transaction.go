package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one line of a checkout receipt. The product fields are copied at
// the moment of sale so later catalog changes do not touch it.
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ItemPrice   decimal.Decimal `json:"item_price"`
}

// NewItem snapshots a product line and computes its price
func NewItem(p *Product, quantity int) Item {
	return Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.CurrentPrice,
		ItemPrice:   p.CurrentPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Transaction is a single checkout of a member
type Transaction struct {
	Receipt    string          `json:"receipt"`
	Date       time.Time       `json:"date"`
	MemberID   string          `json:"member_id"`
	Items      []Item          `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// AddItem appends an item and updates the running total
func (t *Transaction) AddItem(item Item) {
	t.Items = append(t.Items, item)
	t.TotalPrice = t.TotalPrice.Add(item.ItemPrice)
}

// Quantities sums item quantities per product id, in first-seen order.
func (t *Transaction) Quantities() ([]string, map[string]int) {
	var ids []string
	sums := make(map[string]int, len(t.Items))
	for _, item := range t.Items {
		if _, seen := sums[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		sums[item.ProductID] += item.Quantity
	}
	return ids, sums
}
