package grocery

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/domain"
)

// AddProductRequest carries the fields of a new catalog entry
type AddProductRequest struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Stock        int
	ReorderLevel int
}

// AddProduct puts a product in the catalog and immediately runs the reorder
// policy on it, so a product that starts low gets its first stocking order.
// The order number is set on the result when an order was placed.
func (s *Store) AddProduct(req AddProductRequest) Result {
	s.lock()
	defer s.unlock()

	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	switch {
	case id == "":
		return withCode(domain.InvalidProductId)
	case name == "":
		return withCode(domain.InvalidProductName)
	case req.Price.IsNegative() || req.Stock < 0 || req.ReorderLevel < 0:
		return withCode(domain.ActionFailed)
	}
	if _, exists := s.products.Get(id); exists {
		return withCode(domain.InvalidProductId)
	}
	if s.products.ExistsByName(name) {
		return withCode(domain.InvalidProductName)
	}

	p := domain.NewProduct(id, name, req.Price, req.Stock, req.ReorderLevel)
	if _, err := s.products.Add(p); err != nil {
		s.logger.Error("product add failed", zap.String("product_id", id), zap.Error(err))
		return withCode(domain.ActionFailed)
	}
	s.logger.Info("product added", zap.String("product_id", p.ID), zap.String("name", p.Name))
	s.emit(TopicProductAdded, *productFields(p))

	result := Result{Code: domain.ActionSuccessful}
	if reorder, placed := s.reorder(p); placed {
		result.OrderID = reorder.OrderID
		result.Quantity = reorder.Quantity
		result.Order = reorder.Order
	}
	result.Product = productFields(p)
	return result
}

// ChangePrice sets a new current price. Items already on a checkout keep
// the price they were added at.
func (s *Store) ChangePrice(productID string, price decimal.Decimal) Result {
	s.lock()
	defer s.unlock()

	p, ok := s.products.Get(productID)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	if price.IsNegative() {
		return Result{Code: domain.ActionFailed, Product: productFields(p)}
	}
	p.CurrentPrice = price
	s.logger.Info("price changed", zap.String("product_id", p.ID), zap.String("price", price.StringFixed(2)))
	return Result{Code: domain.ActionSuccessful, Product: productFields(p)}
}

// ChangeReorderLevel sets a new threshold and reevaluates the reorder policy
func (s *Store) ChangeReorderLevel(productID string, level int) Result {
	s.lock()
	defer s.unlock()

	p, ok := s.products.Get(productID)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	if level < 0 {
		return Result{Code: domain.ActionFailed, Product: productFields(p)}
	}
	p.ReorderLevel = level
	result := Result{Code: domain.ActionSuccessful}
	if reorder, placed := s.reorder(p); placed {
		result.OrderID = reorder.OrderID
		result.Quantity = reorder.Quantity
		result.Order = reorder.Order
	}
	result.Product = productFields(p)
	return result
}

// RemoveProduct drops a product from the catalog. Products with stock held
// by an open checkout cannot be removed. Outstanding orders for a removed
// product can no longer be received.
func (s *Store) RemoveProduct(productID string) Result {
	s.lock()
	defer s.unlock()

	p, ok := s.products.Get(productID)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	fields := productFields(p)
	if s.reserved(p.ID) || !s.products.Remove(p.ID) {
		return Result{Code: domain.ActionFailed, Product: fields}
	}
	s.logger.Info("product removed", zap.String("product_id", p.ID))
	s.emit(TopicProductRemoved, *fields)
	return Result{Code: domain.ActionSuccessful, Product: fields}
}

func (s *Store) ProductExists(id string) bool {
	s.lock()
	defer s.unlock()
	_, ok := s.products.Get(id)
	return ok
}

// ProductNameExists reports whether name is taken, ignoring case
func (s *Store) ProductNameExists(name string) bool {
	s.lock()
	defer s.unlock()
	return s.products.ExistsByName(name)
}

// GetProduct returns the product fields or InvalidProductId
func (s *Store) GetProduct(id string) Result {
	s.lock()
	defer s.unlock()
	p, ok := s.products.Get(id)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	return Result{Code: domain.ActionSuccessful, Product: productFields(p)}
}

// Products lists the catalog in the order products were added
func (s *Store) Products() []ProductFields {
	s.lock()
	defer s.unlock()
	all := s.products.All()
	out := make([]ProductFields, 0, len(all))
	for _, p := range all {
		out = append(out, *productFields(p))
	}
	return out
}

// SearchProducts lists products whose name starts with prefix, any case
func (s *Store) SearchProducts(prefix string) []ProductFields {
	s.lock()
	defer s.unlock()
	var out []ProductFields
	for _, p := range s.products.SearchByName(prefix) {
		out = append(out, *productFields(p))
	}
	return out
}
