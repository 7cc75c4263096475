package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaptrust/trust-growth-backend/internal/database"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

const testPaymentsCSV = `PaymentID,CustomerID,CustomerName,MerchantID,MerchantName,PaymentDate,PaymentAmount,PaymentStatus,DisputeFlag,DefaultFlag
P0001,C001,Ada Lovelace,M001,Merchant A1,2024-01-15,100.00,PAID,0,0
P0002,C001,Ada Lovelace,M002,Merchant B2,2024-01-20,250.00,FAILED,1,1
P0003,C002,Bob Woodward,M001,Merchant A1,2024-02-05,400.00,PAID,0,0
P0004,C002,Bob Woodward,M001,Merchant A1,2024-02-18,50.00,PENDING,0,0
`

const testMerchantsCSV = `MerchantID,MerchantName,RepaymentRate,DisputeRate,DefaultRate,TransactionVolume,TenureMonths,EngagementScore,ComplianceScore,ResponsivenessScore,ExclusivityFlag
M001,Merchant A1,0.92,0.05,0.03,5400,24,0.8,0.95,0.7,1
M002,Merchant B2,0.75,0.10,0.12,2100,6,0.5,0.8,0.6,0
`

func setupRepo(t *testing.T) *DashboardRepository {
	t.Helper()
	dir := t.TempDir()

	paymentsPath := filepath.Join(dir, "payments.csv")
	merchantsPath := filepath.Join(dir, "merchants_loyalty.csv")
	require.NoError(t, os.WriteFile(paymentsPath, []byte(testPaymentsCSV), 0o644))
	require.NoError(t, os.WriteFile(merchantsPath, []byte(testMerchantsCSV), 0o644))

	dbPath := filepath.Join(dir, "cache.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations("file://../../migrations", dbPath))

	loader := store.NewLoader(paymentsPath, merchantsPath)
	require.NoError(t, database.Populate(context.Background(), db, loader))

	return NewDashboardRepository(db)
}

func TestDashboardRepository(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("happy: top merchants by payments", func(t *testing.T) {
		got, err := repo.TopMerchantsByPayments(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Merchant A1", got[0].Merchant)
		assert.Equal(t, 550.00, got[0].Amount)
		assert.Equal(t, "Merchant B2", got[1].Merchant)
	})

	t.Run("happy: payment status mix", func(t *testing.T) {
		got, err := repo.PaymentStatusMix(ctx)
		require.NoError(t, err)

		counts := map[string]int{}
		for _, s := range got {
			counts[s.ID] = s.Value
		}
		assert.Equal(t, 2, counts["PAID"])
		assert.Equal(t, 1, counts["FAILED"])
		assert.Equal(t, 1, counts["PENDING"])
	})

	t.Run("happy: monthly collections split expected vs received", func(t *testing.T) {
		got, err := repo.MonthlyCollections(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "2024-01", got[0].Month)
		assert.Equal(t, 350.00, got[0].Expected)
		assert.Equal(t, 100.00, got[0].Received)

		assert.Equal(t, "2024-02", got[1].Month)
		assert.Equal(t, 450.00, got[1].Expected)
		assert.Equal(t, 400.00, got[1].Received)
	})

	t.Run("happy: merchant loyalty rows round-trip", func(t *testing.T) {
		got, err := repo.MerchantLoyalty(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "M001", got[0].MerchantID)
		assert.Equal(t, 0.92, got[0].RepaymentRate)
		assert.Equal(t, 1, got[0].ExclusivityFlag)
	})

	t.Run("happy: recent payment stats", func(t *testing.T) {
		got, err := repo.RecentPaymentStats(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Total)
		assert.Equal(t, 2, got.Paid)
		assert.Equal(t, 1, got.Pending)
		assert.Equal(t, 1, got.Failed)
		assert.Equal(t, 200.00, got.AvgAmount)
		assert.Equal(t, "2024-01-15", got.FirstDate)
		assert.Equal(t, "2024-02-18", got.LastDate)
	})

	t.Run("edge: population is idempotent", func(t *testing.T) {
		// setupRepo already populated once; a second Populate must not
		// duplicate rows.
		got, err := repo.TopMerchantsByPayments(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 550.00, got[0].Amount)
	})
}
