package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	alice := enroll(t, s, "Alice")
	enroll(t, s, "Bob")
	require.True(t, s.RemoveMember("M-2").OK())
	addProduct(t, s, "P-1", "Milk", "1.99", 1, 5)
	addProduct(t, s, "P-2", "Bread", "2.50", 12, 2)

	c, _ := s.OpenCheckout(alice)
	require.True(t, c.AddItem("P-2", 2).OK())
	c.Close()
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := populated(t)
	snap := src.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, 3, snap.NextMemberID)
	assert.Equal(t, 2, snap.NextOrderID)
	assert.Equal(t, testNow, snap.SavedAt)

	dst := newTestStore(t)
	require.NoError(t, dst.Restore(snap))

	assert.Equal(t, src.Members(), dst.Members())
	assert.Equal(t, src.Products(), dst.Products())
	assert.Equal(t, src.Orders(), dst.Orders())
	txns, ok := dst.MemberTransactions("M-1", testNow, testNow)
	require.True(t, ok)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].TotalPrice.Equal(price("5.00")))

	// removed ids stay retired after a reload
	assert.Equal(t, "M-3", enroll(t, dst, "Carol"))
	r := dst.PlaceOrder("P-2", 4)
	require.True(t, r.OK())
	assert.Equal(t, "O-2", r.OrderID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := populated(t)
	snap := s.Snapshot()
	snap.Products[0].StockOnHand = 999
	snap.Members[0].Name = "Mallory"

	assert.Equal(t, 1, stockOf(t, s, "P-1"))
	assert.Equal(t, "Alice", s.GetMember("M-1").Member.Name)
}

func TestSnapshotCountsHeldStock(t *testing.T) {
	s := populated(t)
	c, _ := s.OpenCheckout("M-1")
	require.True(t, c.AddItem("P-2", 3).OK())
	assert.Equal(t, 7, stockOf(t, s, "P-2"))

	snap := s.Snapshot()
	for _, p := range snap.Products {
		if p.ID == "P-2" {
			assert.Equal(t, 10, p.StockOnHand)
		}
	}

	assert.ErrorIs(t, s.Restore(snap), ErrCheckoutOpen)
	require.True(t, c.Cancel().OK())
	require.NoError(t, s.Restore(snap))
	assert.Equal(t, 10, stockOf(t, s, "P-2"))
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	s := populated(t)
	before := s.Products()

	assert.ErrorIs(t, s.Restore(nil), ErrInvalidSnapshot)

	snap := s.Snapshot()
	snap.Version = 99
	assert.ErrorIs(t, s.Restore(snap), ErrInvalidSnapshot)

	snap = s.Snapshot()
	snap.Products = append(snap.Products, snap.Products[0])
	assert.ErrorIs(t, s.Restore(snap), ErrInvalidSnapshot)

	snap = s.Snapshot()
	snap.Products[1].StockOnHand = -1
	assert.ErrorIs(t, s.Restore(snap), ErrInvalidSnapshot)

	assert.Equal(t, before, s.Products(), "failed restore leaves state alone")
}
