package adminapi

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coopstore/coopstore/internal/report"
)

// registerReportRoutes registers CSV exports and printable receipts
func registerReportRoutes(g *echo.Group) {
	g.GET("/reports/products.csv", exportProducts)
	g.GET("/reports/products.xlsx", exportProductsXLSX)
	g.GET("/reports/members.csv", exportMembers)
	g.GET("/reports/orders.csv", exportOrders)
	g.GET("/reports/members/:id/receipts", memberReceipts)
}

func sendCSV(c echo.Context, name string, write func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fail(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to build report", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+name)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportProducts(c echo.Context) error {
	products := GetStore(c).Products()
	return sendCSV(c, "products.csv", func(b *bytes.Buffer) error {
		return report.WriteProducts(b, products)
	})
}

func exportProductsXLSX(c echo.Context) error {
	var buf bytes.Buffer
	if err := report.WriteProductsXLSX(&buf, GetStore(c).Products()); err != nil {
		return fail(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to build report", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=products.xlsx")
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func exportMembers(c echo.Context) error {
	members := GetStore(c).Members()
	return sendCSV(c, "members.csv", func(b *bytes.Buffer) error {
		return report.WriteMembers(b, members)
	})
}

// exportOrders exports outstanding orders unless all=true
func exportOrders(c echo.Context) error {
	orders := GetStore(c).OutstandingOrders()
	if c.QueryParam("all") == "true" {
		orders = GetStore(c).Orders()
	}
	return sendCSV(c, "orders.csv", func(b *bytes.Buffer) error {
		return report.WriteOrders(b, orders)
	})
}

func memberReceipts(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse date range", err.Error())
	}
	txns, found := GetStore(c).MemberTransactions(c.Param("id"), from, to)
	if !found {
		return fail(c, http.StatusNotFound, "INVALID_MEMBER_ID", "Member not found", nil)
	}
	var b strings.Builder
	for _, t := range txns {
		b.WriteString(report.Receipt(t))
		b.WriteString("\n")
	}
	return c.String(http.StatusOK, b.String())
}
