package grocery

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/registry"
)

// CheckoutState is the lifecycle position of a checkout
type CheckoutState int

const (
	CheckoutOpen CheckoutState = iota
	CheckoutClosed
	CheckoutCancelled
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutOpen:
		return "open"
	case CheckoutClosed:
		return "closed"
	case CheckoutCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Checkout is one member's sale in progress. Stock is taken from the
// catalog as items are added and handed back if the checkout is cancelled.
// Once closed or cancelled a checkout rejects every operation.
type Checkout struct {
	store    *Store
	members  *registry.MemberRegistry
	products *registry.ProductRegistry

	state    CheckoutState
	memberID string
	txn      *domain.Transaction
}

// CheckoutClosedEvent is published when a checkout is committed
type CheckoutClosedEvent struct {
	Transaction TransactionFields `json:"transaction"`
	Reorders    []string          `json:"reorders"`
}

// OpenCheckout starts a checkout for an existing member
func (s *Store) OpenCheckout(memberID string) (*Checkout, Result) {
	s.lock()
	defer s.unlock()

	m, ok := s.members.Get(memberID)
	if !ok {
		return nil, withCode(domain.InvalidMemberId)
	}
	c := &Checkout{
		store:    s,
		members:  s.members,
		products: s.products,
		state:    CheckoutOpen,
		memberID: m.ID,
		txn: &domain.Transaction{
			Receipt:    s.receipts.Generate().String(),
			Date:       s.clock(),
			MemberID:   m.ID,
			TotalPrice: decimal.Zero,
		},
	}
	s.open[c] = struct{}{}
	return c, Result{Code: domain.ActionSuccessful, Member: memberFields(m)}
}

func (c *Checkout) State() CheckoutState {
	c.store.lock()
	defer c.store.unlock()
	return c.state
}

// MemberID is empty once the checkout is closed or cancelled
func (c *Checkout) MemberID() string {
	c.store.lock()
	defer c.store.unlock()
	return c.memberID
}

// Items lists the lines added so far; nil when not open
func (c *Checkout) Items() []ItemFields {
	c.store.lock()
	defer c.store.unlock()
	if c.state != CheckoutOpen {
		return nil
	}
	items := make([]ItemFields, len(c.txn.Items))
	copy(items, c.txn.Items)
	return items
}

// TotalPrice is the running total, zero when the checkout is not open
func (c *Checkout) TotalPrice() decimal.Decimal {
	c.store.lock()
	defer c.store.unlock()
	if c.state != CheckoutOpen {
		return decimal.Zero
	}
	return c.txn.TotalPrice
}

// AddItem puts quantity units of a product on the checkout at the current
// price and takes them out of stock. Nothing changes when it fails.
func (c *Checkout) AddItem(productID string, quantity int) Result {
	c.store.lock()
	defer c.store.unlock()

	if c.state != CheckoutOpen {
		return withCode(domain.ActionFailed)
	}
	p, ok := c.products.Get(productID)
	if !ok {
		return withCode(domain.InvalidProductId)
	}
	if quantity <= 0 || quantity > p.StockOnHand {
		return Result{Code: domain.InvalidOrderQuantity, Product: productFields(p), Quantity: quantity}
	}
	c.txn.AddItem(domain.NewItem(p, quantity))
	p.StockOnHand -= quantity
	return Result{Code: domain.ActionSuccessful, Product: productFields(p), Quantity: quantity}
}

// Cancel returns every reserved unit to stock and discards the sale
func (c *Checkout) Cancel() Result {
	c.store.lock()
	defer c.store.unlock()

	if c.state != CheckoutOpen {
		return withCode(domain.ActionFailed)
	}
	ids, quantities := c.txn.Quantities()
	for _, id := range ids {
		// products on an open checkout cannot be removed
		if p, ok := c.products.Get(id); ok {
			p.StockOnHand += quantities[id]
		}
	}
	c.store.logger.Info("checkout cancelled",
		zap.String("member_id", c.memberID),
		zap.String("receipt", c.txn.Receipt))
	c.store.emit(TopicCheckoutCancelled, c.txn.Receipt)
	c.finish(CheckoutCancelled)
	return withCode(domain.ActionSuccessful)
}

// Close records the sale in the member's history and runs the reorder
// policy once for each distinct product bought. It returns one result per
// order placed and the outcome of the close itself; a checkout that is not
// open reports ActionFailed and is left alone.
func (c *Checkout) Close() ([]Result, Result) {
	c.store.lock()
	defer c.store.unlock()

	if c.state != CheckoutOpen {
		return nil, withCode(domain.ActionFailed)
	}
	txn := *c.txn
	txn.Items = append([]domain.Item(nil), c.txn.Items...)
	if m, ok := c.members.Get(c.memberID); ok {
		m.AddTransaction(txn)
	} else {
		c.store.logger.Error("checkout member vanished", zap.String("member_id", c.memberID))
	}

	reorders := []Result{}
	var orderIDs []string
	ids, _ := txn.Quantities()
	for _, id := range ids {
		p, ok := c.products.Get(id)
		if !ok {
			continue
		}
		if result, placed := c.store.reorder(p); placed {
			reorders = append(reorders, result)
			orderIDs = append(orderIDs, result.OrderID)
		}
	}

	c.store.logger.Info("checkout closed",
		zap.String("member_id", c.memberID),
		zap.String("receipt", txn.Receipt),
		zap.Int("items", len(txn.Items)),
		zap.String("total", txn.TotalPrice.StringFixed(2)),
		zap.Int("reorders", len(reorders)))
	c.store.emit(TopicCheckoutClosed, CheckoutClosedEvent{
		Transaction: transactionFields(txn),
		Reorders:    orderIDs,
	})
	c.finish(CheckoutClosed)
	return reorders, withCode(domain.ActionSuccessful)
}

func (c *Checkout) finish(state CheckoutState) {
	c.state = state
	c.memberID = ""
	c.txn = nil
	delete(c.store.open, c)
}
