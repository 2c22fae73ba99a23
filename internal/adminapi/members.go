package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/coopstore/coopstore/internal/grocery"
	"github.com/coopstore/coopstore/internal/report"
)

type memberPayload struct {
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	FeePaid    decimal.Decimal `json:"fee_paid"`
	DateJoined string          `json:"date_joined"`
}

type memberUpdatePayload struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// registerMemberRoutes registers member CRUD and history endpoints
func registerMemberRoutes(g *echo.Group) {
	g.GET("/members", listMembers)
	g.GET("/members/:id", getMember)
	g.POST("/members", createMember)
	g.PUT("/members/:id", updateMember)
	g.DELETE("/members/:id", deleteMember)
	g.GET("/members/:id/transactions", listMemberTransactions)
}

func listMembers(c echo.Context) error {
	page, pageSize := parsePagination(c)
	var rows []grocery.MemberFields
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		rows = GetStore(c).SearchMembers(q)
	} else {
		rows = GetStore(c).Members()
	}
	return paged(c, pageOf(rows, page, pageSize), int64(len(rows)), page, pageSize)
}

func getMember(c echo.Context) error {
	r := GetStore(c).GetMember(c.Param("id"))
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r.Member)
}

func createMember(c echo.Context) error {
	var payload memberPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse member", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.FeePaid.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Fee must be >= 0", nil)
	}
	req := grocery.EnrollRequest{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
		FeePaid: payload.FeePaid,
	}
	if payload.DateJoined != "" {
		joined, err := dateparse.ParseIn(payload.DateJoined, time.Local)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse date_joined", err.Error())
		}
		req.DateJoined = joined
	}
	r := GetStore(c).EnrollMember(req)
	if !r.OK() {
		return failResult(c, r)
	}
	return c.JSON(http.StatusCreated, Response{Code: "SUCCESS", Data: r.Member})
}

func updateMember(c echo.Context) error {
	var payload memberUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse member", err.Error())
	}
	r := GetStore(c).UpdateMember(grocery.UpdateMemberRequest{
		ID:      c.Param("id"),
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
	})
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r.Member)
}

func deleteMember(c echo.Context) error {
	r := GetStore(c).RemoveMember(c.Param("id"))
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, map[string]interface{}{"id": r.Member.ID})
}

// parseRange reads from/to query params; a missing from means the
// beginning of time and a missing to means today.
func parseRange(c echo.Context) (time.Time, time.Time, error) {
	from := time.Time{}.In(time.Local)
	to := time.Now()
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		t, err := dateparse.ParseIn(v, time.Local)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		t, err := dateparse.ParseIn(v, time.Local)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

func listMemberTransactions(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse date range", err.Error())
	}
	fy, fm, fd := from.Date()
	if to.In(from.Location()).Before(time.Date(fy, fm, fd, 0, 0, 0, 0, from.Location())) {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "to must not precede from", nil)
	}
	id := c.Param("id")
	txns, found := GetStore(c).MemberTransactions(id, from, to)
	if !found {
		return fail(c, http.StatusNotFound, "INVALID_MEMBER_ID", "Member not found", nil)
	}
	summary, err := report.Summarize(id, txns)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to summarize", err.Error())
	}
	if txns == nil {
		txns = []grocery.TransactionFields{}
	}
	return ok(c, map[string]interface{}{
		"transactions": txns,
		"summary":      summary,
	})
}
