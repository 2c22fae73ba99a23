// Package report renders receipts, CSV exports and spend summaries from
// store query results.
package report

import (
	"fmt"
	"strings"

	"github.com/coopstore/coopstore/internal/grocery"
)

const (
	nameWidth  = 18
	dateLayout = "01/02/2006 at 15:04:05"
)

// ItemLine formats one receipt line: name, quantity, unit and line price
func ItemLine(item grocery.ItemFields) string {
	name := []rune(item.ProductName)
	if len(name) > nameWidth {
		name = name[:nameWidth]
	}
	return fmt.Sprintf("%-18s  %3dx  ($%6s/unit):  $%8s",
		string(name), item.Quantity, item.UnitPrice.StringFixed(2), item.ItemPrice.StringFixed(2))
}

// Receipt formats a transaction with its items and total
func Receipt(t grocery.TransactionFields) string {
	var b strings.Builder
	b.WriteString("Transaction made on ")
	b.WriteString(t.Date.Format(dateLayout))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 52))
	b.WriteString("\n")
	for _, item := range t.Items {
		b.WriteString(ItemLine(item))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "TOTAL %s $%8s\n", strings.Repeat("-", 36), t.TotalPrice.StringFixed(2))
	return b.String()
}
