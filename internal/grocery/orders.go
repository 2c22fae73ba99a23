package grocery

import (
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/domain"
)

// reorder places a vendor order for twice the reorder level when the
// product is at or below its threshold and has no order pending. Callers
// hold the store lock.
func (s *Store) reorder(p *domain.Product) (Result, bool) {
	if !p.NeedsReorder() {
		return withCode(domain.ActionFailed), false
	}
	return s.placeOrder(p, p.RestockQuantity()), true
}

func (s *Store) placeOrder(p *domain.Product, quantity int) Result {
	o := &domain.Order{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		Date:        s.clock(),
		Outstanding: true,
	}
	s.orders.Add(o)
	p.Ordered = true

	fields := orderFields(o)
	s.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("product_id", p.ID),
		zap.Int("quantity", quantity))
	s.emit(TopicOrderPlaced, *fields)
	return Result{
		Code:     domain.ActionSuccessful,
		Product:  productFields(p),
		Order:    fields,
		OrderID:  o.ID,
		Quantity: quantity,
	}
}

// PlaceOrder orders quantity units of a product by hand. Only one order per
// product may be outstanding at a time.
func (s *Store) PlaceOrder(productID string, quantity int) Result {
	s.lock()
	defer s.unlock()

	p, ok := s.products.Get(productID)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	if quantity <= 0 {
		return Result{Code: domain.InvalidOrderQuantity, Product: productFields(p)}
	}
	if p.Ordered {
		return Result{Code: domain.ActionFailed, Product: productFields(p)}
	}
	return s.placeOrder(p, quantity)
}

// ProcessShipment receives an outstanding order: stock goes up by the order
// quantity, the product is no longer marked ordered and the order is closed
// for good. The reorder policy is not run again here.
func (s *Store) ProcessShipment(orderID string) Result {
	s.lock()
	defer s.unlock()

	o, ok := s.orders.Get(orderID)
	if !ok || !o.Outstanding {
		return withCode(domain.ActionFailed)
	}
	p, ok := s.products.Get(o.ProductID)
	if !ok {
		s.logger.Warn("shipment for removed product",
			zap.String("order_id", o.ID),
			zap.String("product_id", o.ProductID))
		return Result{Code: domain.ActionFailed, Order: orderFields(o)}
	}
	p.StockOnHand += o.Quantity
	p.Ordered = false
	o.Outstanding = false

	fields := orderFields(o)
	s.logger.Info("shipment received",
		zap.String("order_id", o.ID),
		zap.String("product_id", p.ID),
		zap.Int("stock_on_hand", p.StockOnHand))
	s.emit(TopicShipmentReceived, *fields)
	return Result{
		Code:     domain.ActionSuccessful,
		Product:  productFields(p),
		Order:    fields,
		OrderID:  o.ID,
		Quantity: o.Quantity,
	}
}

func (s *Store) OrderExists(id string) bool {
	s.lock()
	defer s.unlock()
	_, ok := s.orders.Get(id)
	return ok
}

// OrderIsOutstanding is false for unknown and already received orders
func (s *Store) OrderIsOutstanding(id string) bool {
	s.lock()
	defer s.unlock()
	o, ok := s.orders.Get(id)
	return ok && o.Outstanding
}

// GetOrder returns the order fields or InvalidOrderNumber
func (s *Store) GetOrder(id string) Result {
	s.lock()
	defer s.unlock()
	o, ok := s.orders.Get(id)
	if !ok {
		return withCode(domain.InvalidOrderNumber)
	}
	return Result{Code: domain.ActionSuccessful, Order: orderFields(o), OrderID: o.ID, Quantity: o.Quantity}
}

// Orders lists every order in the order it was placed
func (s *Store) Orders() []OrderFields {
	s.lock()
	defer s.unlock()
	return collectOrders(s.orders.All())
}

// OutstandingOrders lists orders still waiting for a shipment
func (s *Store) OutstandingOrders() []OrderFields {
	s.lock()
	defer s.unlock()
	return collectOrders(s.orders.Outstanding())
}

func collectOrders(orders []*domain.Order) []OrderFields {
	out := make([]OrderFields, 0, len(orders))
	for _, o := range orders {
		out = append(out, *orderFields(o))
	}
	return out
}
