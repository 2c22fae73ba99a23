package grocery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopstore/coopstore/internal/domain"
)

// MemberFields is a read-only copy of a member without its history
type MemberFields struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	DateJoined       time.Time       `json:"date_joined"`
	FeePaid          decimal.Decimal `json:"fee_paid"`
	TransactionCount int             `json:"transaction_count"`
}

// ProductFields is a read-only copy of a product
type ProductFields struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	StockOnHand  int             `json:"stock_on_hand"`
	ReorderLevel int             `json:"reorder_level"`
	Ordered      bool            `json:"ordered"`
}

// OrderFields is a read-only copy of a vendor order
type OrderFields struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	Outstanding bool      `json:"outstanding"`
}

// ItemFields is one receipt line; items never change so the entity is reused
type ItemFields = domain.Item

// TransactionFields is a read-only copy of a closed checkout
type TransactionFields struct {
	Receipt    string          `json:"receipt"`
	Date       time.Time       `json:"date"`
	MemberID   string          `json:"member_id"`
	Items      []ItemFields    `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Result carries the outcome of an operation plus whatever entity fields the
// caller needs to report it.
type Result struct {
	Code     domain.ResultCode `json:"code"`
	Member   *MemberFields     `json:"member,omitempty"`
	Product  *ProductFields    `json:"product,omitempty"`
	Order    *OrderFields      `json:"order,omitempty"`
	OrderID  string            `json:"order_id,omitempty"`
	Quantity int               `json:"quantity,omitempty"`
}

// OK reports whether Code is ActionSuccessful
func (r Result) OK() bool {
	return r.Code.Success()
}

func withCode(code domain.ResultCode) Result {
	return Result{Code: code}
}

func memberFields(m *domain.Member) *MemberFields {
	return &MemberFields{
		ID:               m.ID,
		Name:             m.Name,
		Address:          m.Address,
		Phone:            m.Phone,
		DateJoined:       m.DateJoined,
		FeePaid:          m.FeePaid,
		TransactionCount: len(m.Transactions),
	}
}

func productFields(p *domain.Product) *ProductFields {
	return &ProductFields{
		ID:           p.ID,
		Name:         p.Name,
		CurrentPrice: p.CurrentPrice,
		StockOnHand:  p.StockOnHand,
		ReorderLevel: p.ReorderLevel,
		Ordered:      p.Ordered,
	}
}

func orderFields(o *domain.Order) *OrderFields {
	return &OrderFields{
		ID:          o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Date:        o.Date,
		Outstanding: o.Outstanding,
	}
}

func transactionFields(t domain.Transaction) TransactionFields {
	items := make([]ItemFields, len(t.Items))
	copy(items, t.Items)
	return TransactionFields{
		Receipt:    t.Receipt,
		Date:       t.Date,
		MemberID:   t.MemberID,
		Items:      items,
		TotalPrice: t.TotalPrice,
	}
}
