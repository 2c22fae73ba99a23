package report

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/coopstore/coopstore/internal/grocery"
)

const csvDate = "2006-01-02"

type productRow struct {
	ID           string `csv:"id"`
	Name         string `csv:"name"`
	Price        string `csv:"price"`
	StockOnHand  int    `csv:"stock_on_hand"`
	ReorderLevel int    `csv:"reorder_level"`
	Ordered      bool   `csv:"ordered"`
}

type memberRow struct {
	ID           string `csv:"id"`
	Name         string `csv:"name"`
	Address      string `csv:"address"`
	Phone        string `csv:"phone"`
	DateJoined   string `csv:"date_joined"`
	FeePaid      string `csv:"fee_paid"`
	Transactions int    `csv:"transactions"`
}

type orderRow struct {
	ID          string `csv:"id"`
	ProductID   string `csv:"product_id"`
	ProductName string `csv:"product_name"`
	Quantity    int    `csv:"quantity"`
	Date        string `csv:"date"`
	Outstanding bool   `csv:"outstanding"`
}

// WriteProducts exports the catalog as CSV with a header row
func WriteProducts(w io.Writer, products []grocery.ProductFields) error {
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.CurrentPrice.StringFixed(2),
			StockOnHand:  p.StockOnHand,
			ReorderLevel: p.ReorderLevel,
			Ordered:      p.Ordered,
		})
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "write products csv")
}

func WriteMembers(w io.Writer, members []grocery.MemberFields) error {
	rows := make([]*memberRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, &memberRow{
			ID:           m.ID,
			Name:         m.Name,
			Address:      m.Address,
			Phone:        m.Phone,
			DateJoined:   m.DateJoined.Format(csvDate),
			FeePaid:      m.FeePaid.StringFixed(2),
			Transactions: m.TransactionCount,
		})
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "write members csv")
}

func WriteOrders(w io.Writer, orders []grocery.OrderFields) error {
	rows := make([]*orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, &orderRow{
			ID:          o.ID,
			ProductID:   o.ProductID,
			ProductName: o.ProductName,
			Quantity:    o.Quantity,
			Date:        o.Date.Format(csvDate),
			Outstanding: o.Outstanding,
		})
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "write orders csv")
}
