package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopstore/coopstore/internal/grocery"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type fakeSaver struct {
	calls int
	err   error
}

func (f *fakeSaver) SaveNow(context.Context) error {
	f.calls++
	return f.err
}

func newTestStore(t *testing.T) *grocery.Store {
	t.Helper()
	s, err := grocery.New(grocery.Options{Clock: func() time.Time { return testNow }})
	require.NoError(t, err)
	return s
}

func run(t *testing.T, s *grocery.Store, saver Saver, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(s, saver, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	c.loc = time.UTC
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func seed(t *testing.T, s *grocery.Store) {
	t.Helper()
	require.True(t, s.EnrollMember(grocery.EnrollRequest{Name: "Alice", Address: "1 Main St", FeePaid: decimal.NewFromInt(10)}).OK())
	require.True(t, s.AddProduct(grocery.AddProductRequest{
		ID: "P-1", Name: "Milk", Price: decimal.RequireFromString("1.99"), Stock: 10, ReorderLevel: 2,
	}).OK())
}

func stockOf(t *testing.T, s *grocery.Store, id string) int {
	t.Helper()
	r := s.GetProduct(id)
	require.True(t, r.OK())
	return r.Product.StockOnHand
}

func TestEnrollAndListMembers(t *testing.T) {
	s := newTestStore(t)
	out := run(t, s, nil,
		"1", "Alice", "1 Main St", "555-0100", "abc", "10.00", "y",
		"", "Bob", "", "", "0", "n",
		"11", "0")

	assert.Contains(t, out, "Not a valid amount.")
	assert.Contains(t, out, "A value is required.")
	assert.Contains(t, out, "Member Alice enrolled with ID M-1.")
	assert.Contains(t, out, "Member Bob enrolled with ID M-2.")
	assert.Contains(t, out, "1 Main St")
	assert.Contains(t, out, "GOOD-BYE")
	assert.Len(t, s.Members(), 2)
}

func TestAddProductPlacesFirstOrder(t *testing.T) {
	s := newTestStore(t)
	out := run(t, s, nil,
		"3", "P-1", "Milk", "1.99", "2", "5", "y",
		"P-1", "Bread", "2.50", "3", "1", "n",
		"10", "12", "0")

	assert.Contains(t, out, "Product Milk added with ID P-1.")
	assert.Contains(t, out, "Order O-1 placed for 10 units.")
	assert.Contains(t, out, "That product ID is empty or already in use.")
	assert.Contains(t, out, "O-1      P-1")
	assert.Len(t, s.Products(), 1)
}

func TestCheckoutCollectsPayment(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	out := run(t, s, nil,
		"4", "M-1",
		"P-1", "abc", "3", "y",
		"P-9", "1", "y",
		"P-1", "50", "n",
		"y", "0")

	assert.Contains(t, out, "Not a valid number.")
	assert.Contains(t, out, "Added: Milk")
	assert.Contains(t, out, "No such product.")
	assert.Contains(t, out, "Not enough stock for that quantity.")
	assert.Contains(t, out, "YOUR TOTAL IS: $5.97")
	assert.Contains(t, out, "Checkout complete.")
	assert.Equal(t, 7, stockOf(t, s, "P-1"))
	assert.Equal(t, 0, s.OpenCheckouts())
}

func TestCheckoutReportsReorder(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	out := run(t, s, nil, "4", "M-1", "P-1", "9", "n", "y", "0")

	assert.Contains(t, out, "Product 'Milk' will be reordered (order O-1, 4 units).")
	assert.Len(t, s.OutstandingOrders(), 1)
}

func TestCheckoutWithoutPaymentIsCancelled(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	out := run(t, s, nil, "4", "M-1", "P-1", "3", "n", "n", "0")

	assert.Contains(t, out, "Checkout cancelled.")
	assert.Equal(t, 10, stockOf(t, s, "P-1"))
	assert.Equal(t, 0, s.OpenCheckouts())
}

func TestInputEndingMidCheckoutCancels(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	var out bytes.Buffer
	c := New(s, nil, strings.NewReader("4\nM-1\nP-1\n3\ny\n"), &out)
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 10, stockOf(t, s, "P-1"))
	assert.Equal(t, 0, s.OpenCheckouts())
}

func TestCheckoutUnknownMember(t *testing.T) {
	s := newTestStore(t)
	out := run(t, s, nil, "4", "M-7", "0")
	assert.Contains(t, out, "No such member.")
}

func TestProcessShipment(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	require.True(t, s.PlaceOrder("P-1", 5).OK())
	out := run(t, s, nil,
		"5", "O-9", "y",
		"O-1", "y",
		"O-1", "n",
		"0")

	assert.Contains(t, out, "No such order.")
	assert.Contains(t, out, "Received 5 units of Milk (P-1). Stock on hand: 15.")
	assert.Contains(t, out, "That order has already been received.")
	assert.Equal(t, 15, stockOf(t, s, "P-1"))
}

func TestChangePriceAndProductInfo(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	out := run(t, s, nil,
		"6", "P-2",
		"6", "p-1", "-1", "2.49",
		"7", "mi",
		"7", "zz",
		"0")

	assert.Contains(t, out, "No such product.")
	assert.Contains(t, out, "Price of Milk is now $2.49.")
	assert.Contains(t, out, "Product: Milk, ID: P-1, Price: $2.49, Stock on hand: 10, Reorder level: 2")
	assert.Contains(t, out, "No product matches.")
}

func TestMemberInfoAndRemoval(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	out := run(t, s, nil,
		"8", "AL",
		"2", "M-5",
		"2", "M-1",
		"8", "al",
		"0")

	assert.Contains(t, out, "Member: Alice, ID: M-1, Address: 1 Main St, Fee paid: $10.00")
	assert.Contains(t, out, "No such member.")
	assert.Contains(t, out, "Member M-1 removed.")
	assert.Contains(t, out, "No member matches.")
}

func TestRemoveMemberDuringCheckout(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	co, r := s.OpenCheckout("M-1")
	require.True(t, r.OK())
	defer co.Cancel()

	out := run(t, s, nil, "2", "M-1", "0")
	assert.Contains(t, out, "checkout in progress")
	assert.True(t, s.MemberExists("M-1"))
}

func TestPrintTransactions(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	co, _ := s.OpenCheckout("M-1")
	require.True(t, co.AddItem("P-1", 2).OK())
	co.Close()

	out := run(t, s, nil,
		"9", "M-1", "yesterday", "2024-03-15", "2024-03-14", "2024-03-15",
		"9", "M-1", "2024-01-01", "2024-01-31",
		"0")

	assert.Contains(t, out, "Not a valid date.")
	assert.Contains(t, out, "The end date must not be before the start date.")
	assert.Contains(t, out, "Transaction made on 03/15/2024 at 10:30:00")
	assert.Contains(t, out, "$    3.98")
	assert.Contains(t, out, "No transactions in that range.")
}

func TestSave(t *testing.T) {
	s := newTestStore(t)

	saver := &fakeSaver{}
	out := run(t, s, saver, "13", "0")
	assert.Contains(t, out, "Data saved.")
	assert.Equal(t, 1, saver.calls)

	out = run(t, s, &fakeSaver{err: errors.New("disk full")}, "13", "0")
	assert.Contains(t, out, "Data could not be saved.")

	out = run(t, s, nil, "13", "0")
	assert.Contains(t, out, "No storage configured")
}

func TestMenuHandling(t *testing.T) {
	s := newTestStore(t)
	out := run(t, s, nil, "99", "x", "14", "12", "10", "0")

	assert.Contains(t, out, "Not a valid option number.")
	assert.Contains(t, out, "Not a valid number.")
	assert.Equal(t, 2, strings.Count(out, "Retrieve product info by name"))
	assert.Contains(t, out, "No products.")
	assert.Contains(t, out, "No outstanding orders.")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	c := New(newTestStore(t), nil, strings.NewReader("11\n"), &out)
	require.NoError(t, c.Run(ctx))
	assert.NotContains(t, out.String(), "No members.")
}
