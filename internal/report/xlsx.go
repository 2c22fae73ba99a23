package report

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/coopstore/coopstore/internal/grocery"
)

const xlsxSheet = "Sheet1"

var productHeader = []string{"ID", "Name", "Price", "Stock on hand", "Reorder level", "Ordered"}

func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

// WriteProductsXLSX exports the catalog as a single-sheet workbook
func WriteProductsXLSX(w io.Writer, products []grocery.ProductFields) error {
	f := excelize.NewFile()
	for col, title := range productHeader {
		f.SetCellValue(xlsxSheet, cellName(col, 1), title)
	}
	for i, p := range products {
		row := i + 2
		f.SetCellValue(xlsxSheet, cellName(0, row), p.ID)
		f.SetCellValue(xlsxSheet, cellName(1, row), p.Name)
		f.SetCellValue(xlsxSheet, cellName(2, row), p.CurrentPrice.InexactFloat64())
		f.SetCellValue(xlsxSheet, cellName(3, row), p.StockOnHand)
		f.SetCellValue(xlsxSheet, cellName(4, row), p.ReorderLevel)
		f.SetCellValue(xlsxSheet, cellName(5, row), p.Ordered)
	}
	return errors.Wrap(f.Write(w), "write products workbook")
}
