package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/coopstore/coopstore/internal/grocery"
)

type orderPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// registerOrderRoutes registers vendor order endpoints
func registerOrderRoutes(g *echo.Group) {
	g.GET("/orders", listOrders)
	g.GET("/orders/:id", getOrder)
	g.POST("/orders", createOrder)
	g.POST("/orders/:id/receive", receiveOrder)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	var rows []grocery.OrderFields
	if cast.ToBool(c.QueryParam("outstanding")) {
		rows = GetStore(c).OutstandingOrders()
	} else {
		rows = GetStore(c).Orders()
	}
	return paged(c, pageOf(rows, page, pageSize), int64(len(rows)), page, pageSize)
}

func getOrder(c echo.Context) error {
	r := GetStore(c).GetOrder(c.Param("id"))
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, r.Order)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	r := GetStore(c).PlaceOrder(payload.ProductID, payload.Quantity)
	if !r.OK() {
		return failResult(c, r)
	}
	return c.JSON(http.StatusCreated, Response{Code: "SUCCESS", Data: r.Order})
}

// receiveOrder processes the shipment for an outstanding order
func receiveOrder(c echo.Context) error {
	r := GetStore(c).ProcessShipment(c.Param("id"))
	if !r.OK() {
		if !GetStore(c).OrderExists(c.Param("id")) {
			return fail(c, http.StatusNotFound, "INVALID_ORDER_NUMBER", "Order not found", nil)
		}
		return failResult(c, r)
	}
	return ok(c, r)
}
