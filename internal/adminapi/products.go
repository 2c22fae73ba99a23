package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/grocery"
)

type productPayload struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorder_level"`
}

type pricePayload struct {
	Price *decimal.Decimal `json:"price"`
}

type reorderLevelPayload struct {
	ReorderLevel *int `json:"reorder_level"`
}

// registerProductRoutes registers catalog endpoints
func registerProductRoutes(g *echo.Group) {
	g.GET("/products", listProducts)
	g.GET("/products/:id", getProduct)
	g.POST("/products", createProduct)
	g.PUT("/products/:id/price", changePrice)
	g.PUT("/products/:id/reorder-level", changeReorderLevel)
	g.DELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	var rows []grocery.ProductFields
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		rows = GetStore(c).SearchProducts(q)
	} else {
		rows = GetStore(c).Products()
	}
	return paged(c, pageOf(rows, page, pageSize), int64(len(rows)), page, pageSize)
}

func getProduct(c echo.Context) error {
	r := GetStore(c).GetProduct(c.Param("id"))
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r.Product)
}

// createProduct adds a product; the reply carries the stocking order when
// the initial stock is already at or below the reorder level.
func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	r := GetStore(c).AddProduct(grocery.AddProductRequest{
		ID:           payload.ID,
		Name:         payload.Name,
		Price:        payload.Price,
		Stock:        payload.Stock,
		ReorderLevel: payload.ReorderLevel,
	})
	switch r.Code {
	case domain.ActionSuccessful:
		return c.JSON(http.StatusCreated, Response{Code: "SUCCESS", Data: r})
	case domain.InvalidProductId:
		if strings.TrimSpace(payload.ID) == "" {
			return fail(c, http.StatusBadRequest, r.Code.String(), "Product id is required", nil)
		}
		return fail(c, http.StatusConflict, r.Code.String(), "Product id already exists", nil)
	case domain.InvalidProductName:
		if strings.TrimSpace(payload.Name) == "" {
			return fail(c, http.StatusBadRequest, r.Code.String(), "Product name is required", nil)
		}
		return fail(c, http.StatusConflict, r.Code.String(), "Product name already exists", nil)
	}
	return fail(c, http.StatusBadRequest, r.Code.String(), "Price, stock and reorder level must be >= 0", nil)
}

func changePrice(c echo.Context) error {
	var payload pricePayload
	if err := c.Bind(&payload); err != nil || payload.Price == nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "price is required", nil)
	}
	r := GetStore(c).ChangePrice(c.Param("id"), *payload.Price)
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r.Product)
}

func changeReorderLevel(c echo.Context) error {
	var payload reorderLevelPayload
	if err := c.Bind(&payload); err != nil || payload.ReorderLevel == nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "reorder_level is required", nil)
	}
	r := GetStore(c).ChangeReorderLevel(c.Param("id"), *payload.ReorderLevel)
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r)
}

func deleteProduct(c echo.Context) error {
	r := GetStore(c).RemoveProduct(c.Param("id"))
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, map[string]interface{}{"id": r.Product.ID})
}
