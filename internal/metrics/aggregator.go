// Package metrics reduces raw transactions into the per-entity summary
// statistics consumed by the scoring engine.
package metrics

import (
	"math"
	"sort"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// AggregateCustomers groups transactions by (CustomerID, CustomerName) and
// computes repayment rate, dispute count, default rate, and transaction
// volume per group. A customer ID that maps to multiple names in the feed
// yields one group per distinct pair; that is a data-quality condition, not
// an error. Groups preserve first-seen order of the input.
//
// Rates are rounded to 2 decimals and volume to the nearest integer before
// scoring, so scores reproduce the displayed figures exactly.
func AggregateCustomers(txns []model.Transaction) []model.CustomerMetrics {
	type key struct {
		id   string
		name string
	}
	type acc struct {
		total    int
		paid     int
		disputes int
		defaults int
		volume   float64
	}

	order := make([]key, 0)
	groups := make(map[key]*acc)

	for _, txn := range txns {
		k := key{id: txn.CustomerID, name: txn.CustomerName}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.total++
		if txn.Status == model.StatusPaid {
			g.paid++
		}
		if txn.DisputeFlag {
			g.disputes++
		}
		if txn.DefaultFlag {
			g.defaults++
		}
		g.volume += txn.Amount
	}

	out := make([]model.CustomerMetrics, 0, len(order))
	for _, k := range order {
		g := groups[k]
		out = append(out, model.CustomerMetrics{
			CustomerID:        k.id,
			CustomerName:      k.name,
			RepaymentRate:     round2(float64(g.paid) / float64(g.total)),
			DisputeCount:      g.disputes,
			DefaultRate:       round2(float64(g.defaults) / float64(g.total)),
			TransactionVolume: int(math.Round(g.volume)),
		})
	}
	return out
}

// HistoryPoint is a customer's aggregate for a single payment date.
type HistoryPoint struct {
	PaymentDate       string  `json:"PaymentDate"`
	RepaymentRate     float64 `json:"RepaymentRate"`
	DisputeCount      int     `json:"DisputeCount"`
	DefaultRate       float64 `json:"DefaultRate"`
	TransactionVolume float64 `json:"TransactionVolume"`
}

// CustomerHistory aggregates one customer's transactions per payment date,
// ordered by date. History points keep full precision; only the top-level
// customer metrics apply the display rounding. Returns nil when the customer
// has no transactions.
func CustomerHistory(txns []model.Transaction, customerID string) []HistoryPoint {
	type acc struct {
		total    int
		paid     int
		disputes int
		defaults int
		volume   float64
	}

	groups := make(map[string]*acc)
	for _, txn := range txns {
		if txn.CustomerID != customerID {
			continue
		}
		g, ok := groups[txn.PaymentDate]
		if !ok {
			g = &acc{}
			groups[txn.PaymentDate] = g
		}
		g.total++
		if txn.Status == model.StatusPaid {
			g.paid++
		}
		if txn.DisputeFlag {
			g.disputes++
		}
		if txn.DefaultFlag {
			g.defaults++
		}
		g.volume += txn.Amount
	}

	if len(groups) == 0 {
		return nil
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]HistoryPoint, 0, len(dates))
	for _, d := range dates {
		g := groups[d]
		out = append(out, HistoryPoint{
			PaymentDate:       d,
			RepaymentRate:     float64(g.paid) / float64(g.total),
			DisputeCount:      g.disputes,
			DefaultRate:       float64(g.defaults) / float64(g.total),
			TransactionVolume: g.volume,
		})
	}
	return out
}

// RoundMerchantProfile applies the display rounding to a merchant profile
// before scoring: all rates and component scores to 2 decimals.
func RoundMerchantProfile(p model.MerchantProfile) model.MerchantProfile {
	p.RepaymentRate = round2(p.RepaymentRate)
	p.DisputeRate = round2(p.DisputeRate)
	p.DefaultRate = round2(p.DefaultRate)
	p.TransactionVolume = round2(p.TransactionVolume)
	p.EngagementScore = round2(p.EngagementScore)
	p.ComplianceScore = round2(p.ComplianceScore)
	p.ResponsivenessScore = round2(p.ResponsivenessScore)
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
