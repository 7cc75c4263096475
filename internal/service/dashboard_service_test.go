package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaptrust/trust-growth-backend/internal/database"
	"github.com/snaptrust/trust-growth-backend/internal/repository"
	"github.com/snaptrust/trust-growth-backend/internal/scoring"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

const dashPaymentsCSV = `PaymentID,CustomerID,CustomerName,MerchantID,MerchantName,PaymentDate,PaymentAmount,PaymentStatus,DisputeFlag,DefaultFlag
P0001,C001,Ada Lovelace,M001,Merchant A1,2024-01-15,100.00,PAID,0,0
P0002,C001,Ada Lovelace,M002,Merchant B2,2024-01-20,250.00,FAILED,1,1
P0003,C002,Bob Woodward,M001,Merchant A1,2024-02-05,400.00,PAID,0,0
`

const dashMerchantsCSV = `MerchantID,MerchantName,RepaymentRate,DisputeRate,DefaultRate,TransactionVolume,TenureMonths,EngagementScore,ComplianceScore,ResponsivenessScore,ExclusivityFlag
M001,Merchant A1,0.92,0.05,0.03,5400,24,0.8,0.95,0.7,1
M002,Merchant B2,0.75,0.10,0.12,2100,6,0.5,0.8,0.6,0
`

func setupDashboard(t *testing.T) *DashboardService {
	t.Helper()
	dir := t.TempDir()

	paymentsPath := filepath.Join(dir, "payments.csv")
	merchantsPath := filepath.Join(dir, "merchants_loyalty.csv")
	require.NoError(t, os.WriteFile(paymentsPath, []byte(dashPaymentsCSV), 0o644))
	require.NoError(t, os.WriteFile(merchantsPath, []byte(dashMerchantsCSV), 0o644))

	dbPath := filepath.Join(dir, "cache.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations("file://../../migrations", dbPath))

	loader := store.NewLoader(paymentsPath, merchantsPath)
	require.NoError(t, database.Populate(context.Background(), db, loader))

	return NewDashboardService(repository.NewDashboardRepository(db), scoring.Default())
}

func TestDashboardMerchants(t *testing.T) {
	svc := setupDashboard(t)

	t.Run("happy: three panels assembled concurrently", func(t *testing.T) {
		got, err := svc.Merchants(context.Background(), 10)
		require.NoError(t, err)

		require.Len(t, got.TopMerchantsByPayments, 2)
		assert.Equal(t, "Merchant A1", got.TopMerchantsByPayments[0].Merchant)
		assert.Equal(t, 500.00, got.TopMerchantsByPayments[0].Amount)

		assert.Len(t, got.PaymentStatusMix, 2)

		require.Len(t, got.TopMerchantTrust, 2)
		assert.Equal(t, "Merchant A1", got.TopMerchantTrust[0].Merchant)
		assert.Greater(t, got.TopMerchantTrust[0].TrustScore, got.TopMerchantTrust[1].TrustScore)
	})

	t.Run("bad: nil repository means cache disabled", func(t *testing.T) {
		disabled := NewDashboardService(nil, scoring.Default())
		_, err := disabled.Merchants(context.Background(), 10)
		assert.ErrorIs(t, err, ErrCacheDisabled)
	})
}

func TestDashboardConsumers(t *testing.T) {
	svc := setupDashboard(t)

	t.Run("happy: expected and received series share the month axis", func(t *testing.T) {
		got, err := svc.Consumers(context.Background())
		require.NoError(t, err)
		require.Len(t, got.MonthlyCollections, 2)

		expected := got.MonthlyCollections[0]
		received := got.MonthlyCollections[1]
		assert.Equal(t, "expected", expected.ID)
		assert.Equal(t, "received", received.ID)
		require.Len(t, expected.Data, 2)

		assert.Equal(t, "2024-01", expected.Data[0].X)
		assert.Equal(t, 350.00, expected.Data[0].Y)
		assert.Equal(t, 100.00, received.Data[0].Y)
		assert.Equal(t, "2024-02", expected.Data[1].X)
		assert.Equal(t, 400.00, received.Data[1].Y)
	})

	t.Run("bad: nil repository means cache disabled", func(t *testing.T) {
		disabled := NewDashboardService(nil, scoring.Default())
		_, err := disabled.Consumers(context.Background())
		assert.ErrorIs(t, err, ErrCacheDisabled)
	})
}
