package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member represents a single member of the co-op
type Member struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	DateJoined   time.Time       `json:"date_joined"`
	FeePaid      decimal.Decimal `json:"fee_paid"`
	Transactions []Transaction   `json:"transactions"`
}

// AddTransaction appends a closed checkout to the member's history
func (m *Member) AddTransaction(t Transaction) {
	m.Transactions = append(m.Transactions, t)
}

// TransactionsBetween returns transactions dated on any calendar day from
// the day of from through the day of to, both inclusive. Days are taken in
// the location of from.
func (m *Member) TransactionsBetween(from, to time.Time) []Transaction {
	start := startOfDay(from)
	end := startOfDay(to.In(from.Location())).AddDate(0, 0, 1)
	var out []Transaction
	for _, t := range m.Transactions {
		if !t.Date.Before(start) && t.Date.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
