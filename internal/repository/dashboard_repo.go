// Package repository holds read-side queries against the SQLite cache.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// MerchantPaymentTotal is a merchant's collected payment volume.
type MerchantPaymentTotal struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

// StatusCount is the number of payments in one terminal status.
type StatusCount struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

// MonthlyCollection aggregates one calendar month of payments: the total
// billed amount and the amount actually received (status PAID).
type MonthlyCollection struct {
	Month    string  `json:"month"`
	Expected float64 `json:"expected"`
	Received float64 `json:"received"`
}

func (r *DashboardRepository) TopMerchantsByPayments(ctx context.Context, limit int) ([]MerchantPaymentTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT MerchantName, ROUND(SUM(PaymentAmount), 2) AS amount
		FROM payments
		GROUP BY MerchantName
		ORDER BY amount DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top merchants: %w", err)
	}
	defer rows.Close()

	var out []MerchantPaymentTotal
	for rows.Next() {
		var t MerchantPaymentTotal
		if err := rows.Scan(&t.Merchant, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan top merchants: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *DashboardRepository) PaymentStatusMix(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT PaymentStatus, COUNT(*) AS value
		FROM payments
		GROUP BY PaymentStatus`)
	if err != nil {
		return nil, fmt.Errorf("query status mix: %w", err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.ID, &s.Value); err != nil {
			return nil, fmt.Errorf("scan status mix: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *DashboardRepository) MonthlyCollections(ctx context.Context) ([]MonthlyCollection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', PaymentDate) AS month,
		       SUM(PaymentAmount) AS expected,
		       SUM(CASE WHEN PaymentStatus = 'PAID' THEN PaymentAmount ELSE 0 END) AS received
		FROM payments
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("query monthly collections: %w", err)
	}
	defer rows.Close()

	var out []MonthlyCollection
	for rows.Next() {
		var m MonthlyCollection
		if err := rows.Scan(&m.Month, &m.Expected, &m.Received); err != nil {
			return nil, fmt.Errorf("scan monthly collections: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MerchantLoyalty reads the mirrored merchant-loyalty table. Scores are not
// stored in the cache; callers recompute them on every read.
func (r *DashboardRepository) MerchantLoyalty(ctx context.Context) ([]model.MerchantProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT MerchantID, MerchantName, RepaymentRate, DisputeRate, DefaultRate,
		       TransactionVolume, TenureMonths, EngagementScore, ComplianceScore,
		       ResponsivenessScore, COALESCE(ExclusivityFlag, 0)
		FROM merchants_loyalty`)
	if err != nil {
		return nil, fmt.Errorf("query merchant loyalty: %w", err)
	}
	defer rows.Close()

	var out []model.MerchantProfile
	for rows.Next() {
		var p model.MerchantProfile
		if err := rows.Scan(&p.MerchantID, &p.MerchantName, &p.RepaymentRate,
			&p.DisputeRate, &p.DefaultRate, &p.TransactionVolume, &p.TenureMonths,
			&p.EngagementScore, &p.ComplianceScore, &p.ResponsivenessScore,
			&p.ExclusivityFlag); err != nil {
			return nil, fmt.Errorf("scan merchant loyalty: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecentPaymentStats summarizes the most recent payments for AI chat context.
type RecentPaymentStats struct {
	Total     int
	Paid      int
	Pending   int
	Failed    int
	AvgAmount float64
	FirstDate string
	LastDate  string
}

func (r *DashboardRepository) RecentPaymentStats(ctx context.Context, limit int) (RecentPaymentStats, error) {
	var s RecentPaymentStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN PaymentStatus = 'PAID' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN PaymentStatus = 'PENDING' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN PaymentStatus = 'FAILED' THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(PaymentAmount), 0),
		       COALESCE(MIN(PaymentDate), ''),
		       COALESCE(MAX(PaymentDate), '')
		FROM (SELECT * FROM payments ORDER BY PaymentDate DESC LIMIT ?)`, limit).
		Scan(&s.Total, &s.Paid, &s.Pending, &s.Failed, &s.AvgAmount, &s.FirstDate, &s.LastDate)
	if err != nil {
		return RecentPaymentStats{}, fmt.Errorf("query recent payment stats: %w", err)
	}
	return s, nil
}
