package domain

import "github.com/shopspring/decimal"

// Product represents a single catalog entry carried by the store
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	StockOnHand  int             `json:"stock_on_hand"`
	ReorderLevel int             `json:"reorder_level"`
	// Ordered is true while a vendor order for this product is outstanding
	Ordered bool `json:"ordered"`
}

// NewProduct creates a product that has no pending order
func NewProduct(id, name string, price decimal.Decimal, stock, reorderLevel int) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		CurrentPrice: price,
		StockOnHand:  stock,
		ReorderLevel: reorderLevel,
	}
}

// NeedsReorder reports whether stock is at or below the reorder level
// and no order is already pending.
func (p *Product) NeedsReorder() bool {
	return p.StockOnHand <= p.ReorderLevel && !p.Ordered
}

// RestockQuantity is the amount ordered from the vendor when stock runs low
func (p *Product) RestockQuantity() int {
	return p.ReorderLevel * RestockFactor
}

// RestockFactor multiplies the reorder level to get the vendor order size
const RestockFactor = 2
