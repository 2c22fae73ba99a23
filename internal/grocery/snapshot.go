package grocery

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/registry"
)

// SnapshotVersion is the layout version written into every snapshot
const SnapshotVersion = 1

var (
	// ErrCheckoutOpen is returned by Restore while any checkout is open
	ErrCheckoutOpen = errors.New("grocery: checkout in progress")
	// ErrInvalidSnapshot wraps every validation failure in Restore
	ErrInvalidSnapshot = errors.New("grocery: invalid snapshot")
)

// Snapshot is the whole store state, counters included, in a form any
// encoder can handle.
type Snapshot struct {
	Version      int               `json:"version"`
	SavedAt      time.Time         `json:"saved_at"`
	NextMemberID int               `json:"next_member_id"`
	NextOrderID  int               `json:"next_order_id"`
	Members      []*domain.Member  `json:"members"`
	Products     []*domain.Product `json:"products"`
	Orders       []*domain.Order   `json:"orders"`
}

// Snapshot copies the committed state of the store. Stock held by open
// checkouts is counted as still on the shelf, because those checkouts do
// not survive a reload.
func (s *Store) Snapshot() *Snapshot {
	s.lock()
	defer s.unlock()

	snap := &Snapshot{
		Version:      SnapshotVersion,
		SavedAt:      s.clock(),
		NextMemberID: s.members.Next(),
		NextOrderID:  s.orders.Next(),
	}
	for _, m := range s.members.All() {
		cp := *m
		cp.Transactions = make([]domain.Transaction, len(m.Transactions))
		for i, t := range m.Transactions {
			cp.Transactions[i] = t
			cp.Transactions[i].Items = append([]domain.Item(nil), t.Items...)
		}
		snap.Members = append(snap.Members, &cp)
	}

	held := make(map[string]int)
	for c := range s.open {
		ids, quantities := c.txn.Quantities()
		for _, id := range ids {
			held[registry.Fold(id)] += quantities[id]
		}
	}
	for _, p := range s.products.All() {
		cp := *p
		cp.StockOnHand += held[registry.Fold(p.ID)]
		snap.Products = append(snap.Products, &cp)
	}
	for _, o := range s.orders.All() {
		cp := *o
		snap.Orders = append(snap.Orders, &cp)
	}
	return snap
}

// Restore replaces the whole store state with snap. Either every registry
// is replaced or, on error, none is.
func (s *Store) Restore(snap *Snapshot) error {
	if snap == nil {
		return errors.Wrap(ErrInvalidSnapshot, "nil snapshot")
	}
	if snap.Version != SnapshotVersion {
		return errors.Wrapf(ErrInvalidSnapshot, "unsupported version %d", snap.Version)
	}
	members, products, orders, err := rebuild(snap)
	if err != nil {
		return errors.Wrap(ErrInvalidSnapshot, err.Error())
	}

	s.lock()
	defer s.unlock()
	if len(s.open) > 0 {
		return ErrCheckoutOpen
	}
	s.members = members
	s.products = products
	s.orders = orders
	s.logger.Info("store restored",
		zap.Int("members", members.Len()),
		zap.Int("products", products.Len()),
		zap.Int("orders", orders.Len()),
		zap.Time("saved_at", snap.SavedAt))
	return nil
}

func rebuild(snap *Snapshot) (*registry.MemberRegistry, *registry.ProductRegistry, *registry.OrderRegistry, error) {
	var members []*domain.Member
	for _, m := range snap.Members {
		if m == nil || m.ID == "" {
			return nil, nil, nil, errors.New("member without id")
		}
		cp := *m
		cp.Transactions = append([]domain.Transaction(nil), m.Transactions...)
		members = append(members, &cp)
	}
	var products []*domain.Product
	for _, p := range snap.Products {
		if p == nil || p.ID == "" {
			return nil, nil, nil, errors.New("product without id")
		}
		if p.StockOnHand < 0 || p.ReorderLevel < 0 || p.CurrentPrice.IsNegative() {
			return nil, nil, nil, fmt.Errorf("product %s has negative fields", p.ID)
		}
		cp := *p
		products = append(products, &cp)
	}
	var orders []*domain.Order
	for _, o := range snap.Orders {
		if o == nil || o.ID == "" {
			return nil, nil, nil, errors.New("order without id")
		}
		cp := *o
		orders = append(orders, &cp)
	}

	mr, err := registry.RestoreMemberRegistry(members, snap.NextMemberID)
	if err != nil {
		return nil, nil, nil, err
	}
	pr, err := registry.RestoreProductRegistry(products)
	if err != nil {
		return nil, nil, nil, err
	}
	or, err := registry.RestoreOrderRegistry(orders, snap.NextOrderID)
	if err != nil {
		return nil, nil, nil, err
	}
	return mr, pr, or, nil
}
