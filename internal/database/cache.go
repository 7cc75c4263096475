package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/snaptrust/trust-growth-backend/internal/store"
)

// Populate mirrors the CSV feeds into the cache tables if they are empty.
// Idempotent: a non-empty table is left untouched. There is no write path
// after startup.
func Populate(ctx context.Context, db *sql.DB, loader *store.Loader) error {
	if err := populatePayments(ctx, db, loader); err != nil {
		return err
	}
	return populateMerchants(ctx, db, loader)
}

func populatePayments(ctx context.Context, db *sql.DB, loader *store.Loader) error {
	count, err := rowCount(ctx, db, "payments")
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("rows", count).Msg("payments cache already populated, skipping")
		return nil
	}

	txns, err := loader.Payments()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payments load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO payments (PaymentID, CustomerID, CustomerName, MerchantID, MerchantName,
			PaymentDate, PaymentAmount, PaymentStatus, DisputeFlag, DefaultFlag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare payments insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		_, err := stmt.ExecContext(ctx, t.PaymentID, t.CustomerID, t.CustomerName,
			t.MerchantID, t.MerchantName, t.PaymentDate, t.Amount, string(t.Status),
			boolToInt(t.DisputeFlag), boolToInt(t.DefaultFlag))
		if err != nil {
			return fmt.Errorf("insert payment %s: %w", t.PaymentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payments load: %w", err)
	}
	log.Info().Int("rows", len(txns)).Msg("populated payments cache")
	return nil
}

func populateMerchants(ctx context.Context, db *sql.DB, loader *store.Loader) error {
	count, err := rowCount(ctx, db, "merchants_loyalty")
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("rows", count).Msg("merchants cache already populated, skipping")
		return nil
	}

	profiles, err := loader.Merchants()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merchants load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO merchants_loyalty (MerchantID, MerchantName, RepaymentRate, DisputeRate,
			DefaultRate, TransactionVolume, TenureMonths, EngagementScore, ComplianceScore,
			ResponsivenessScore, ExclusivityFlag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare merchants insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range profiles {
		_, err := stmt.ExecContext(ctx, p.MerchantID, p.MerchantName, p.RepaymentRate,
			p.DisputeRate, p.DefaultRate, p.TransactionVolume, p.TenureMonths,
			p.EngagementScore, p.ComplianceScore, p.ResponsivenessScore, p.ExclusivityFlag)
		if err != nil {
			return fmt.Errorf("insert merchant %s: %w", p.MerchantID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merchants load: %w", err)
	}
	log.Info().Int("rows", len(profiles)).Msg("populated merchants cache")
	return nil
}

func rowCount(ctx context.Context, db *sql.DB, table string) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
