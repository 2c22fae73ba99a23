package console

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopstore/coopstore/internal/domain"
	"github.com/coopstore/coopstore/internal/grocery"
	"github.com/coopstore/coopstore/internal/report"
)

func (c *Console) enrollMember() error {
	for {
		name, err := c.readString("Enter member name: ")
		if err != nil {
			return err
		}
		address, err := c.readLine("Enter address: ")
		if err != nil {
			return err
		}
		phone, err := c.readLine("Enter phone: ")
		if err != nil {
			return err
		}
		fee, err := c.readDecimal("Enter fee paid: ")
		if err != nil {
			return err
		}
		r := c.store.EnrollMember(grocery.EnrollRequest{
			Name:    name,
			Address: address,
			Phone:   phone,
			FeePaid: fee,
		})
		if r.OK() {
			c.printf("Member %s enrolled with ID %s.\n", r.Member.Name, r.Member.ID)
		} else {
			c.println("Member could not be enrolled.")
		}
		more, err := c.readYesNo("Enroll another member?")
		if err != nil || !more {
			return err
		}
	}
}

func (c *Console) removeMember() error {
	id, err := c.readString("Enter member ID: ")
	if err != nil {
		return err
	}
	switch r := c.store.RemoveMember(id); r.Code {
	case domain.ActionSuccessful:
		c.printf("Member %s removed.\n", r.Member.ID)
	case domain.InvalidMemberId:
		c.println("No such member.")
	default:
		c.println("Member has a checkout in progress and could not be removed.")
	}
	return nil
}

func (c *Console) addProduct() error {
	for {
		id, err := c.readString("Enter product ID: ")
		if err != nil {
			return err
		}
		name, err := c.readString("Enter product name: ")
		if err != nil {
			return err
		}
		price, err := c.readDecimal("Enter current price: ")
		if err != nil {
			return err
		}
		stock, err := c.readInt("Enter stock on hand: ")
		if err != nil {
			return err
		}
		level, err := c.readInt("Enter reorder level: ")
		if err != nil {
			return err
		}
		r := c.store.AddProduct(grocery.AddProductRequest{
			ID:           id,
			Name:         name,
			Price:        price,
			Stock:        stock,
			ReorderLevel: level,
		})
		switch r.Code {
		case domain.ActionSuccessful:
			c.printf("Product %s added with ID %s.\n", r.Product.Name, r.Product.ID)
			if r.OrderID != "" {
				c.printf("Order %s placed for %d units.\n", r.OrderID, r.Quantity)
			}
		case domain.InvalidProductId:
			c.println("That product ID is empty or already in use.")
		case domain.InvalidProductName:
			c.println("That product name is empty or already in use.")
		default:
			c.println("Price, stock and reorder level must not be negative.")
		}
		more, err := c.readYesNo("Add another product?")
		if err != nil || !more {
			return err
		}
	}
}

func (c *Console) checkout() error {
	memberID, err := c.readString("Enter member ID: ")
	if err != nil {
		return err
	}
	co, r := c.store.OpenCheckout(memberID)
	if !r.OK() {
		c.println("No such member.")
		return nil
	}
	if err := c.fillCheckout(co); err != nil {
		co.Cancel()
		return err
	}

	c.printf("\nYOUR TOTAL IS: $%s\n", co.TotalPrice().StringFixed(2))
	paid, err := c.readYesNo("Was the payment collected?")
	if err != nil {
		co.Cancel()
		return err
	}
	if !paid {
		co.Cancel()
		c.println("Checkout cancelled.")
		return nil
	}
	reorders, closed := co.Close()
	if !closed.OK() {
		c.println("Checkout could not be completed.")
		return nil
	}
	for _, reorder := range reorders {
		c.printf("Product '%s' will be reordered (order %s, %d units).\n",
			reorder.Product.Name, reorder.OrderID, reorder.Quantity)
	}
	c.println("Checkout complete.")
	return nil
}

func (c *Console) fillCheckout(co *grocery.Checkout) error {
	for {
		productID, err := c.readString("Enter product ID: ")
		if err != nil {
			return err
		}
		quantity, err := c.readInt("Enter quantity: ")
		if err != nil {
			return err
		}
		switch r := co.AddItem(productID, quantity); r.Code {
		case domain.ActionSuccessful:
			items := co.Items()
			c.printf("Added: %s\n", report.ItemLine(items[len(items)-1]))
		case domain.InvalidOrderQuantity:
			c.println("Not enough stock for that quantity.")
		default:
			c.println("No such product.")
		}
		more, err := c.readYesNo("Another item?")
		if err != nil || !more {
			return err
		}
	}
}

func (c *Console) processShipment() error {
	for {
		orderID, err := c.readString("Enter order number: ")
		if err != nil {
			return err
		}
		switch {
		case !c.store.OrderExists(orderID):
			c.println("No such order.")
		case !c.store.OrderIsOutstanding(orderID):
			c.println("That order has already been received.")
		default:
			if r := c.store.ProcessShipment(orderID); r.OK() {
				p := r.Product
				c.printf("Received %d units of %s (%s). Stock on hand: %d.\n",
					r.Quantity, p.Name, p.ID, p.StockOnHand)
			} else {
				c.println("The ordered product is no longer in the catalog.")
			}
		}
		more, err := c.readYesNo("Process another shipment?")
		if err != nil || !more {
			return err
		}
	}
}

func (c *Console) changePrice() error {
	productID, err := c.readString("Enter product ID: ")
	if err != nil {
		return err
	}
	if !c.store.ProductExists(productID) {
		c.println("No such product.")
		return nil
	}
	price, err := c.readDecimal("Enter new price: ")
	if err != nil {
		return err
	}
	if r := c.store.ChangePrice(productID, price); r.OK() {
		c.printf("Price of %s is now $%s.\n", r.Product.Name, r.Product.CurrentPrice.StringFixed(2))
	} else {
		c.println("Price could not be changed.")
	}
	return nil
}

func (c *Console) productInfo() error {
	prefix, err := c.readString("Enter product name or its beginning: ")
	if err != nil {
		return err
	}
	products := c.store.SearchProducts(prefix)
	if len(products) == 0 {
		c.println("No product matches.")
	}
	for _, p := range products {
		c.printf("Product: %s, ID: %s, Price: $%s, Stock on hand: %d, Reorder level: %d\n",
			p.Name, p.ID, p.CurrentPrice.StringFixed(2), p.StockOnHand, p.ReorderLevel)
	}
	return nil
}

func (c *Console) memberInfo() error {
	prefix, err := c.readString("Enter member name or its beginning: ")
	if err != nil {
		return err
	}
	members := c.store.SearchMembers(prefix)
	if len(members) == 0 {
		c.println("No member matches.")
	}
	for _, m := range members {
		c.printf("Member: %s, ID: %s, Address: %s, Fee paid: $%s\n",
			m.Name, m.ID, m.Address, m.FeePaid.StringFixed(2))
	}
	return nil
}

func (c *Console) printTransactions() error {
	memberID, err := c.readString("Enter member ID: ")
	if err != nil {
		return err
	}
	if !c.store.MemberExists(memberID) {
		c.println("No such member.")
		return nil
	}
	from, err := c.readDate("Enter start date: ")
	if err != nil {
		return err
	}
	var to time.Time
	for {
		if to, err = c.readDate("Enter end date: "); err != nil {
			return err
		}
		if !dayBefore(to, from) {
			break
		}
		c.println("The end date must not be before the start date.")
	}
	txns, _ := c.store.MemberTransactions(memberID, from, to)
	if len(txns) == 0 {
		c.println("No transactions in that range.")
	}
	for _, t := range txns {
		c.printf("\n%s", report.Receipt(t))
	}
	return nil
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Before(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}

func (c *Console) listOutstandingOrders() {
	orders := c.store.OutstandingOrders()
	if len(orders) == 0 {
		c.println("No outstanding orders.")
		return
	}
	c.printf("%-8s %-10s %-20s %8s  %s\n", "ORDER", "PRODUCT", "NAME", "QUANTITY", "DATE")
	for _, o := range orders {
		c.printf("%-8s %-10s %-20s %8d  %s\n", o.ID, o.ProductID, o.ProductName, o.Quantity, o.Date.Format("01/02/2006"))
	}
}

func (c *Console) listMembers() {
	members := c.store.Members()
	if len(members) == 0 {
		c.println("No members.")
		return
	}
	c.printf("%-8s %-20s %-28s %-14s %8s\n", "ID", "NAME", "ADDRESS", "PHONE", "FEE")
	for _, m := range members {
		c.printf("%-8s %-20s %-28s %-14s %8s\n", m.ID, m.Name, m.Address, m.Phone, money(m.FeePaid))
	}
}

func (c *Console) listProducts() {
	products := c.store.Products()
	if len(products) == 0 {
		c.println("No products.")
		return
	}
	c.printf("%-10s %-20s %8s %6s %8s\n", "ID", "NAME", "PRICE", "STOCK", "REORDER")
	for _, p := range products {
		c.printf("%-10s %-20s %8s %6d %8d\n", p.ID, p.Name, money(p.CurrentPrice), p.StockOnHand, p.ReorderLevel)
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
