// Package console is the interactive clerk menu over any reader and writer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/grocery"
)

const (
	actionExit = iota
	actionEnrollMember
	actionRemoveMember
	actionAddProduct
	actionCheckout
	actionProcessShipment
	actionChangePrice
	actionProductInfo
	actionMemberInfo
	actionPrintTransactions
	actionOutstandingOrders
	actionListMembers
	actionListProducts
	actionSave
	actionHelp
)

var menu = []string{
	actionExit:              "Exit",
	actionEnrollMember:      "Enroll a member",
	actionRemoveMember:      "Remove a member",
	actionAddProduct:        "Add a product",
	actionCheckout:          "Check out a member's items",
	actionProcessShipment:   "Process a shipment",
	actionChangePrice:       "Change the price of a product",
	actionProductInfo:       "Retrieve product info by name",
	actionMemberInfo:        "Retrieve member info by name",
	actionPrintTransactions: "Print a member's transactions",
	actionOutstandingOrders: "List outstanding orders",
	actionListMembers:       "List all members",
	actionListProducts:      "List all products",
	actionSave:              "Save data",
	actionHelp:              "Help",
}

// Saver persists the store on request
type Saver interface {
	SaveNow(ctx context.Context) error
}

type Console struct {
	store *grocery.Store
	saver Saver
	in    *bufio.Scanner
	out   io.Writer
	loc   *time.Location
}

func New(store *grocery.Store, saver Saver, in io.Reader, out io.Writer) *Console {
	return &Console{
		store: store,
		saver: saver,
		in:    bufio.NewScanner(in),
		out:   out,
		loc:   time.Local,
	}
}

// Run shows the menu until the clerk exits, input ends or ctx is done
func (c *Console) Run(ctx context.Context) error {
	c.println("*** WELCOME TO THE CO-OP GROCERY STORE ***")
	c.help()
	for {
		if ctx.Err() != nil {
			return nil
		}
		choice, err := c.readInt(fmt.Sprintf("\nEnter a command (%d for help): ", actionHelp))
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == actionExit {
			c.println("\nThank you for using the co-op grocery store. GOOD-BYE.")
			return nil
		}
		if err := c.dispatch(ctx, choice); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (c *Console) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case actionEnrollMember:
		return c.enrollMember()
	case actionRemoveMember:
		return c.removeMember()
	case actionAddProduct:
		return c.addProduct()
	case actionCheckout:
		return c.checkout()
	case actionProcessShipment:
		return c.processShipment()
	case actionChangePrice:
		return c.changePrice()
	case actionProductInfo:
		return c.productInfo()
	case actionMemberInfo:
		return c.memberInfo()
	case actionPrintTransactions:
		return c.printTransactions()
	case actionOutstandingOrders:
		c.listOutstandingOrders()
	case actionListMembers:
		c.listMembers()
	case actionListProducts:
		c.listProducts()
	case actionSave:
		c.save(ctx)
	case actionHelp:
		c.help()
	default:
		c.println("Not a valid option number.")
	}
	return nil
}

func (c *Console) help() {
	c.println("\nEnter a number between 0 and 14 as explained below:")
	for i, text := range menu {
		c.printf("  %2d  %s\n", i, text)
	}
}

func (c *Console) save(ctx context.Context) {
	if c.saver == nil {
		c.println("No storage configured; data could not be saved.")
		return
	}
	if err := c.saver.SaveNow(ctx); err != nil {
		zap.L().Error("console save failed", zap.String("namespace", "console"), zap.Error(err))
		c.println("Data could not be saved.")
		return
	}
	c.println("Data saved.")
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// readLine prompts and returns the trimmed line, io.EOF when input ends
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readString re-prompts until the line is not empty
func (c *Console) readString(prompt string) (string, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil || s != "" {
			return s, err
		}
		c.println("A value is required.")
	}
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if s != "" {
			// cast parses with base prefixes, so "08" would be rejected
			digits := strings.TrimLeft(s, "0")
			if digits == "" {
				digits = "0"
			}
			if n, err := cast.ToIntE(digits); err == nil {
				return n, nil
			}
		}
		c.println("Not a valid number.")
	}
}

func (c *Console) readDecimal(prompt string) (decimal.Decimal, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
		if err == nil && !d.IsNegative() {
			return d, nil
		}
		c.println("Not a valid amount.")
	}
}

func (c *Console) readDate(prompt string) (time.Time, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return time.Time{}, err
		}
		t, err := dateparse.ParseIn(s, c.loc)
		if err == nil {
			return t, nil
		}
		c.println("Not a valid date.")
	}
}

func (c *Console) readYesNo(prompt string) (bool, error) {
	s, err := c.readLine(prompt + " (Y|y)[es] or anything else for no: ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "y") || strings.EqualFold(s, "yes"), nil
}
