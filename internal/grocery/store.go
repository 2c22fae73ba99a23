package grocery

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/registry"
)

// Publisher receives store events. *EventBus.Bus satisfies it.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, ...interface{}) {}

// Options configures a Store. The zero value is usable.
type Options struct {
	// Clock returns the current time; defaults to time.Now
	Clock func() time.Time
	// Publisher receives events after the store lock is released
	Publisher Publisher
	Logger    *zap.Logger
	// NodeID seeds receipt numbers, 0..1023
	NodeID int64
}

type event struct {
	topic   string
	payload interface{}
}

// Store is the single entry point to members, the catalog and vendor orders.
// It owns the three registries; all access goes through its methods, which
// serialize on one mutex.
type Store struct {
	mu       sync.Mutex
	members  *registry.MemberRegistry
	products *registry.ProductRegistry
	orders   *registry.OrderRegistry
	open     map[*Checkout]struct{}

	clock     func() time.Time
	publisher Publisher
	logger    *zap.Logger
	receipts  *snowflake.Node
	pending   []event
}

// New creates an empty store
func New(opts Options) (*Store, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	node, err := snowflake.NewNode(opts.NodeID)
	if err != nil {
		return nil, err
	}
	return &Store{
		members:   registry.NewMemberRegistry(),
		products:  registry.NewProductRegistry(),
		orders:    registry.NewOrderRegistry(),
		open:      make(map[*Checkout]struct{}),
		clock:     opts.Clock,
		publisher: opts.Publisher,
		logger:    opts.Logger.With(zap.String("namespace", "grocery")),
		receipts:  node,
	}, nil
}

func (s *Store) lock() {
	s.mu.Lock()
}

// unlock releases the store and then delivers queued events, so handlers
// may call back into the store.
func (s *Store) unlock() {
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, e := range pending {
		s.publisher.Publish(e.topic, e.payload)
	}
}

func (s *Store) emit(topic string, payload interface{}) {
	s.pending = append(s.pending, event{topic: topic, payload: payload})
}

// OpenCheckouts is the number of checkouts neither closed nor cancelled
func (s *Store) OpenCheckouts() int {
	s.lock()
	defer s.unlock()
	return len(s.open)
}

// reserved reports whether an open checkout holds stock of the product
func (s *Store) reserved(productID string) bool {
	folded := registry.Fold(productID)
	for c := range s.open {
		for _, item := range c.txn.Items {
			if registry.Fold(item.ProductID) == folded {
				return true
			}
		}
	}
	return false
}

func (s *Store) memberInCheckout(memberID string) bool {
	folded := registry.Fold(memberID)
	for c := range s.open {
		if registry.Fold(c.memberID) == folded {
			return true
		}
	}
	return false
}
