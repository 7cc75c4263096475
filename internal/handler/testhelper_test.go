package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/scoring"
	"github.com/snaptrust/trust-growth-backend/internal/service"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

const paymentsCSV = `PaymentID,CustomerID,CustomerName,MerchantID,MerchantName,PaymentDate,PaymentAmount,PaymentStatus,DisputeFlag,DefaultFlag
P001,C001,Alice,M001,Acme,2024-01-10,100.00,PAID,0,0
P002,C001,Alice,M001,Acme,2024-01-20,150.00,FAILED,1,1
P003,C001,Alice,M002,Globex,2024-02-05,200.00,PAID,0,0
P004,C002,Bob,M002,Globex,2024-02-15,300.00,PAID,0,0
`

const merchantsCSV = `MerchantID,MerchantName,RepaymentRate,DisputeRate,DefaultRate,TransactionVolume,TenureMonths,EngagementScore,ComplianceScore,ResponsivenessScore,ExclusivityFlag
M001,Acme,0.9,0.05,0.05,500,24,0.8,0.9,0.7,1
M002,Globex,0.6,0.2,0.2,2000,12,0.5,0.6,0.5,0
`

// newTestRouter wires the full route tree against temp CSV feeds, without a
// cache database and with AI enrichment disabled.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	paymentsPath := filepath.Join(dir, "payments.csv")
	merchantsPath := filepath.Join(dir, "merchants.csv")
	require.NoError(t, os.WriteFile(paymentsPath, []byte(paymentsCSV), 0o644))
	require.NoError(t, os.WriteFile(merchantsPath, []byte(merchantsCSV), 0o644))

	loader := store.NewLoader(paymentsPath, merchantsPath)
	cfg := scoring.Default()
	narrator := ai.NewNarrator(ai.Disabled{})

	customerService := service.NewCustomerService(loader, cfg, narrator)
	merchantService := service.NewMerchantService(loader, cfg, narrator)
	leaderboardService := service.NewLeaderboardService(customerService, merchantService)
	dashboardService := service.NewDashboardService(nil, cfg)
	aiService := service.NewAIQueryService(customerService, merchantService, narrator, nil)

	healthHandler := NewHealthHandler(nil)
	customerHandler := NewCustomerHandler(customerService)
	merchantHandler := NewMerchantHandler(merchantService)
	leaderboardHandler := NewLeaderboardHandler(leaderboardService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	aiHandler := NewAIHandler(aiService)

	router := gin.New()
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/customers", customerHandler.List)
	router.GET("/customers/:id", customerHandler.Get)
	router.GET("/customers/:id/summary/explain", customerHandler.Explain)
	router.GET("/customers/:id/history", customerHandler.History)
	router.GET("/customers/:id/recommendations", customerHandler.Recommendations)
	router.GET("/merchants", merchantHandler.List)
	router.GET("/merchants/:id", merchantHandler.Get)
	router.GET("/merchants/:id/summary/explain", merchantHandler.Explain)
	router.GET("/merchants/:id/history", merchantHandler.History)
	router.GET("/merchants/:id/benchmark", merchantHandler.Benchmark)
	router.GET("/merchants/:id/recommendations", merchantHandler.Recommendations)
	router.GET("/leaderboard/customers", leaderboardHandler.Customers)
	router.GET("/leaderboard/merchants", leaderboardHandler.Merchants)
	router.GET("/dashboard/merchants", dashboardHandler.Merchants)
	router.GET("/dashboard/consumers", dashboardHandler.Consumers)
	router.POST("/ai/query", aiHandler.Query)
	router.POST("/ai/chat", aiHandler.Chat)
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}
