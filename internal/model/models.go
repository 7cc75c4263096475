package model

// PaymentStatus is the terminal state of a payment record.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusFailed  PaymentStatus = "FAILED"
	StatusPending PaymentStatus = "PENDING"
)

// LoyaltyTier is an ordinal classification derived solely from TrustScore.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "Bronze"
	TierSilver   LoyaltyTier = "Silver"
	TierGold     LoyaltyTier = "Gold"
	TierPlatinum LoyaltyTier = "Platinum"
)

// Ordinal returns the rank of the tier (Bronze lowest). Tiers are never
// compared alphabetically.
func (t LoyaltyTier) Ordinal() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	}
	return 0
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Transaction is an immutable payment fact from the payments feed.
// DisputeFlag and DefaultFlag are stored independently in the raw feed;
// neither is derived from Status at read time.
type Transaction struct {
	PaymentID    string        `json:"PaymentID"`
	CustomerID   string        `json:"CustomerID"`
	CustomerName string        `json:"CustomerName"`
	MerchantID   string        `json:"MerchantID"`
	MerchantName string        `json:"MerchantName"`
	PaymentDate  string        `json:"PaymentDate"`
	Amount       float64       `json:"PaymentAmount"`
	Status       PaymentStatus `json:"PaymentStatus"`
	DisputeFlag  bool          `json:"DisputeFlag"`
	DefaultFlag  bool          `json:"DefaultFlag"`
}

// MerchantProfile is a per-merchant record from the loyalty feed. Rates are
// fractions in [0,1]; ExclusivityFlag keeps the 0/1 encoding of the feed.
type MerchantProfile struct {
	MerchantID          string  `json:"MerchantID"`
	MerchantName        string  `json:"MerchantName"`
	RepaymentRate       float64 `json:"RepaymentRate"`
	DisputeRate         float64 `json:"DisputeRate"`
	DefaultRate         float64 `json:"DefaultRate"`
	TransactionVolume   float64 `json:"TransactionVolume"`
	TenureMonths        int     `json:"TenureMonths"`
	EngagementScore     float64 `json:"EngagementScore"`
	ComplianceScore     float64 `json:"ComplianceScore"`
	ResponsivenessScore float64 `json:"ResponsivenessScore"`
	ExclusivityFlag     int     `json:"ExclusivityFlag"`
}

// CustomerMetrics is derived per (CustomerID, CustomerName) group from the
// transaction feed. It is never stored; it is recomputed on every read.
type CustomerMetrics struct {
	CustomerID        string  `json:"CustomerID"`
	CustomerName      string  `json:"CustomerName"`
	RepaymentRate     float64 `json:"RepaymentRate"`
	DisputeCount      int     `json:"DisputeCount"`
	DefaultRate       float64 `json:"DefaultRate"`
	TransactionVolume int     `json:"TransactionVolume"`
}

// ScoredCustomer is a customer metrics row with derived scores attached.
type ScoredCustomer struct {
	CustomerMetrics
	TrustScore  float64     `json:"TrustScore"`
	LoyaltyTier LoyaltyTier `json:"LoyaltyTier"`
}

// ScoredMerchant is a merchant profile with derived scores attached.
type ScoredMerchant struct {
	MerchantProfile
	TrustScore  float64     `json:"TrustScore"`
	LoyaltyTier LoyaltyTier `json:"LoyaltyTier"`
}

func (s ScoredCustomer) Score() float64    { return s.TrustScore }
func (s ScoredCustomer) Tier() LoyaltyTier { return s.LoyaltyTier }
func (s ScoredMerchant) Score() float64    { return s.TrustScore }
func (s ScoredMerchant) Tier() LoyaltyTier { return s.LoyaltyTier }
