package registry

import (
	"github.com/coopstore/coopstore/internal/domain"
)

// OrderIDPrefix is prepended to every generated order number
const OrderIDPrefix = "O-"

// OrderRegistry holds every vendor order ever placed, fulfilled or not
type OrderRegistry struct {
	orders list[domain.Order]
	seq    sequence
}

func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{
		orders: newList(func(o *domain.Order) string { return o.ID }),
		seq:    newSequence(OrderIDPrefix, 1),
	}
}

// RestoreOrderRegistry rebuilds the order book from saved orders and counter
func RestoreOrderRegistry(orders []*domain.Order, next int) (*OrderRegistry, error) {
	r := NewOrderRegistry()
	r.seq = newSequence(OrderIDPrefix, next)
	for _, o := range orders {
		if err := r.orders.add(o); err != nil {
			return nil, err
		}
		r.seq.observe(o.ID)
	}
	return r, nil
}

// Add assigns the next order number and stores the order
func (r *OrderRegistry) Add(o *domain.Order) string {
	o.ID = r.seq.issue()
	_ = r.orders.add(o)
	return o.ID
}

func (r *OrderRegistry) Get(id string) (*domain.Order, bool) {
	return r.orders.get(id)
}

func (r *OrderRegistry) All() []*domain.Order {
	return r.orders.all()
}

// Outstanding lists orders not yet received, evaluated on every call
func (r *OrderRegistry) Outstanding() []*domain.Order {
	var out []*domain.Order
	for _, o := range r.orders.items {
		if o.Outstanding {
			out = append(out, o)
		}
	}
	return out
}

func (r *OrderRegistry) Len() int {
	return r.orders.len()
}

// Next is the counter value the next order will use
func (r *OrderRegistry) Next() int {
	return r.seq.next
}
