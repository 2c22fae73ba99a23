package report

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/coopstore/coopstore/internal/grocery"
)

// SpendSummary describes what a member spent over a set of transactions.
// Total is exact; mean and median are rounded to cents.
type SpendSummary struct {
	MemberID     string          `json:"member_id"`
	Transactions int             `json:"transactions"`
	Total        decimal.Decimal `json:"total"`
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	Max          decimal.Decimal `json:"max"`
}

func Summarize(memberID string, txns []grocery.TransactionFields) (SpendSummary, error) {
	summary := SpendSummary{
		MemberID:     memberID,
		Transactions: len(txns),
		Total:        decimal.Zero,
		Mean:         decimal.Zero,
		Median:       decimal.Zero,
		Max:          decimal.Zero,
	}
	if len(txns) == 0 {
		return summary, nil
	}

	data := make(stats.Float64Data, 0, len(txns))
	for _, t := range txns {
		summary.Total = summary.Total.Add(t.TotalPrice)
		if t.TotalPrice.GreaterThan(summary.Max) {
			summary.Max = t.TotalPrice
		}
		data = append(data, t.TotalPrice.InexactFloat64())
	}
	mean, err := data.Mean()
	if err != nil {
		return summary, err
	}
	median, err := data.Median()
	if err != nil {
		return summary, err
	}
	summary.Mean = decimal.NewFromFloat(mean).Round(2)
	summary.Median = decimal.NewFromFloat(median).Round(2)
	return summary, nil
}
