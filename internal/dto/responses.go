package dto

import (
	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/metrics"
	"github.com/snaptrust/trust-growth-backend/internal/model"
	"github.com/snaptrust/trust-growth-backend/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CustomerSummary is the list-view projection of a scored customer.
type CustomerSummary struct {
	CustomerID   string            `json:"CustomerID"`
	CustomerName string            `json:"CustomerName"`
	TrustScore   float64           `json:"TrustScore"`
	LoyaltyTier  model.LoyaltyTier `json:"LoyaltyTier"`
}

// CustomerDetail is the full-metrics view with enrichment attached.
type CustomerDetail struct {
	model.ScoredCustomer
	RiskScore model.RiskLevel `json:"RiskScore"`
	Summary   string          `json:"Summary"`
}

// MerchantSummary is the list-view projection of a scored merchant.
type MerchantSummary struct {
	MerchantID      string            `json:"MerchantID"`
	MerchantName    string            `json:"MerchantName"`
	ExclusivityFlag int               `json:"ExclusivityFlag"`
	TrustScore      float64           `json:"TrustScore"`
	LoyaltyTier     model.LoyaltyTier `json:"LoyaltyTier"`
}

type MerchantDetail struct {
	model.ScoredMerchant
	RiskScore       model.RiskLevel     `json:"RiskScore"`
	Summary         string              `json:"Summary"`
	Recommendations []ai.Recommendation `json:"Recommendations"`
}

type CustomerExplanation struct {
	CustomerID  string `json:"CustomerID"`
	Explanation string `json:"Explanation"`
}

type MerchantExplanation struct {
	MerchantID  string `json:"MerchantID"`
	Explanation string `json:"Explanation"`
}

// CustomerHistoryEntry is one payment date's aggregate with scores attached.
type CustomerHistoryEntry struct {
	metrics.HistoryPoint
	TrustScore  float64           `json:"TrustScore"`
	LoyaltyTier model.LoyaltyTier `json:"LoyaltyTier"`
}

type CustomerHistory struct {
	CustomerID string                 `json:"CustomerID"`
	History    []CustomerHistoryEntry `json:"History"`
}

// MerchantTrend is the synthetic five-point trend series for a merchant.
type MerchantTrend struct {
	TrustScore      []float64 `json:"TrustScore"`
	EngagementScore []float64 `json:"EngagementScore"`
	ComplianceScore []float64 `json:"ComplianceScore"`
}

type MerchantHistory struct {
	MerchantID string        `json:"MerchantID"`
	History    MerchantTrend `json:"History"`
}

type CustomerRecommendations struct {
	CustomerID      string              `json:"CustomerID"`
	Recommendations []ai.Recommendation `json:"Recommendations"`
}

type MerchantRecommendations struct {
	MerchantID      string              `json:"MerchantID"`
	Recommendations []ai.Recommendation `json:"Recommendations"`
}

// Stats holds descriptive statistics for one numeric column across the
// merchant fleet.
type Stats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"25%"`
	P50   float64 `json:"50%"`
	P75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

type MerchantBenchmark struct {
	MerchantID      string               `json:"MerchantID"`
	MerchantMetrics model.ScoredMerchant `json:"MerchantMetrics"`
	Benchmarks      map[string]Stats     `json:"Benchmarks"`
}

// TrustPoint is one entry of the dashboard trust ranking.
type TrustPoint struct {
	Merchant    string            `json:"merchant"`
	TrustScore  float64           `json:"trustScore"`
	LoyaltyTier model.LoyaltyTier `json:"loyaltyTier"`
}

func (t TrustPoint) Score() float64          { return t.TrustScore }
func (t TrustPoint) Tier() model.LoyaltyTier { return t.LoyaltyTier }

type MerchantsDashboard struct {
	TopMerchantsByPayments []repository.MerchantPaymentTotal `json:"topMerchantsByPayments"`
	PaymentStatusMix       []repository.StatusCount          `json:"paymentStatusMix"`
	TopMerchantTrust       []TrustPoint                      `json:"topMerchantTrust"`
}

// SeriesPoint and Series are chart-ready line series for the consumers
// dashboard.
type SeriesPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	ID   string        `json:"id"`
	Data []SeriesPoint `json:"data"`
}

type ConsumersDashboard struct {
	MonthlyCollections []Series `json:"monthlyCollections"`
}

type AIQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

type AIQueryResponse struct {
	Entity string         `json:"entity"`
	Query  string         `json:"query"`
	Result map[string]any `json:"result"`
}

type ChatRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=consumer merchant"`
}

type ChatResponse struct {
	Response string `json:"response"`
	UserType string `json:"userType"`
	Status   string `json:"status"`
}
