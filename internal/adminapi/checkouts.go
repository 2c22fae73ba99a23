package adminapi

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/grocery"
)

type checkoutPayload struct {
	MemberID string `json:"member_id"`
}

type itemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutView struct {
	Session    string               `json:"session"`
	MemberID   string               `json:"member_id"`
	State      string               `json:"state"`
	Items      []grocery.ItemFields `json:"items"`
	TotalPrice decimal.Decimal      `json:"total_price"`
}

// checkoutSessions maps opaque handles to checkouts still open
type checkoutSessions struct {
	mu   sync.Mutex
	open map[string]*grocery.Checkout
}

func newCheckoutSessions() *checkoutSessions {
	return &checkoutSessions{open: make(map[string]*grocery.Checkout)}
}

func (s *checkoutSessions) add(c *grocery.Checkout) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.open[id] = c
	s.mu.Unlock()
	return id
}

func (s *checkoutSessions) get(id string) (*grocery.Checkout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.open[id]
	return c, ok
}

// take removes and returns the checkout so only one caller can finish it
func (s *checkoutSessions) take(id string) (*grocery.Checkout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.open[id]
	delete(s.open, id)
	return c, ok
}

func (s *checkoutSessions) drop(id string) {
	s.mu.Lock()
	delete(s.open, id)
	s.mu.Unlock()
}

func (s *checkoutSessions) cancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.open {
		c.Cancel()
		delete(s.open, id)
	}
	zap.L().Debug("checkout sessions cancelled", zap.String("namespace", "adminapi"))
}

func (s *checkoutSessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// registerCheckoutRoutes registers the checkout session workflow
func registerCheckoutRoutes(g *echo.Group) {
	g.POST("/checkouts", openCheckout)
	g.GET("/checkouts/:session", getCheckout)
	g.POST("/checkouts/:session/items", addCheckoutItem)
	g.POST("/checkouts/:session/close", closeCheckout)
	g.POST("/checkouts/:session/cancel", cancelCheckout)
}

func viewOf(session string, c *grocery.Checkout) checkoutView {
	items := c.Items()
	if items == nil {
		items = []grocery.ItemFields{}
	}
	return checkoutView{
		Session:    session,
		MemberID:   c.MemberID(),
		State:      c.State().String(),
		Items:      items,
		TotalPrice: c.TotalPrice(),
	}
}

func lookupCheckout(c echo.Context) (string, *grocery.Checkout, error) {
	session := c.Param("session")
	checkout, found := getSessions(c).get(session)
	if !found {
		return session, nil, fail(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Checkout session not found", nil)
	}
	return session, checkout, nil
}

func openCheckout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout", err.Error())
	}
	checkout, r := GetStore(c).OpenCheckout(payload.MemberID)
	if !r.OK() {
		return failResult(c, r)
	}
	session := getSessions(c).add(checkout)
	return c.JSON(http.StatusCreated, Response{Code: "SUCCESS", Data: viewOf(session, checkout)})
}

func getCheckout(c echo.Context) error {
	session, checkout, err := lookupCheckout(c)
	if checkout == nil {
		return err
	}
	return ok(c, viewOf(session, checkout))
}

func addCheckoutItem(c echo.Context) error {
	session, checkout, err := lookupCheckout(c)
	if checkout == nil {
		return err
	}
	var payload itemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	r := checkout.AddItem(payload.ProductID, payload.Quantity)
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, viewOf(session, checkout))
}

// closeCheckout commits the sale and reports any vendor orders it caused
func closeCheckout(c echo.Context) error {
	checkout, found := getSessions(c).take(c.Param("session"))
	if !found {
		return fail(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Checkout session not found", nil)
	}
	total := checkout.TotalPrice()
	items := checkout.Items()
	memberID := checkout.MemberID()
	reorders, r := checkout.Close()
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, map[string]interface{}{
		"member_id":   memberID,
		"items":       items,
		"total_price": total,
		"reorders":    reorders,
	})
}

func cancelCheckout(c echo.Context) error {
	session, checkout, err := lookupCheckout(c)
	if checkout == nil {
		return err
	}
	r := checkout.Cancel()
	getSessions(c).drop(session)
	if !r.OK() {
		return failResult(c, r)
	}
	return ok(c, map[string]interface{}{"session": session})
}
