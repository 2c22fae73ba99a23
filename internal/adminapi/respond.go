package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/grocery"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// Response is the envelope of every JSON reply
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Meta    *PageMeta   `json:"meta,omitempty"`
}

type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "SUCCESS", Data: data})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, Response{
		Code: "SUCCESS",
		Data: data,
		Meta: &PageMeta{Total: total, Page: page, PageSize: pageSize},
	})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Message: message, Details: details})
}

// failResult reports a store result that was not successful
func failResult(c echo.Context, r grocery.Result) error {
	status := http.StatusConflict
	switch r.Code {
	case domain.InvalidMemberId, domain.InvalidProductId, domain.InvalidOrderNumber:
		status = http.StatusNotFound
	case domain.InvalidOrderQuantity, domain.InvalidProductName:
		status = http.StatusBadRequest
	}
	return c.JSON(status, Response{Code: r.Code.String(), Message: "operation refused", Data: r})
}

// parsePagination accepts page and perPage, falling back to pageSize
func parsePagination(c echo.Context) (int, int) {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size := cast.ToInt(c.QueryParam("perPage"))
	if size <= 0 {
		size = cast.ToInt(c.QueryParam("pageSize"))
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}

func pageOf[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
