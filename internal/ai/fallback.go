package ai

import (
	"fmt"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// Deterministic fallbacks. Repeated calls with identical input must return
// identical output; no randomness, no timestamps.

func FallbackCustomerSummary(c model.ScoredCustomer) string {
	return fmt.Sprintf(
		"%s (%s) holds a trust score of %.2f and sits in the %s tier, based on a repayment rate of %.0f%%, %d dispute(s), and a default rate of %.0f%%.",
		c.CustomerName, c.CustomerID, c.TrustScore, c.LoyaltyTier,
		c.RepaymentRate*100, c.DisputeCount, c.DefaultRate*100,
	)
}

func FallbackMerchantSummary(m model.ScoredMerchant) string {
	exclusivity := "a standard partner"
	if m.ExclusivityFlag == 1 {
		exclusivity = "an exclusive partner"
	}
	return fmt.Sprintf(
		"%s (%s) holds a trust score of %.2f and sits in the %s tier. It is %s with a repayment rate of %.0f%%, a dispute rate of %.0f%%, and a default rate of %.0f%%.",
		m.MerchantName, m.MerchantID, m.TrustScore, m.LoyaltyTier, exclusivity,
		m.RepaymentRate*100, m.DisputeRate*100, m.DefaultRate*100,
	)
}

// FallbackCustomerRecommendations derives rule-based recommendations from
// the customer's weakest metrics.
func FallbackCustomerRecommendations(c model.ScoredCustomer) []Recommendation {
	var recs []Recommendation
	if c.RepaymentRate < 0.8 {
		recs = append(recs, Recommendation{
			Title:       "Improve repayment consistency",
			Description: "Set up payment reminders or autopay to raise the share of payments completed on time.",
		})
	}
	if c.DisputeCount > 3 {
		recs = append(recs, Recommendation{
			Title:       "Reduce disputes",
			Description: "Review recent disputed payments and resolve open issues with merchants before raising new disputes.",
		})
	}
	if c.DefaultRate > 0.1 {
		recs = append(recs, Recommendation{
			Title:       "Address defaults",
			Description: "Restructure outstanding obligations to avoid further defaults and rebuild the trust score.",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Title:       "Maintain current standing",
			Description: "Metrics are healthy; continue paying on time to keep or improve the current loyalty tier.",
		})
	}
	return recs
}

// FallbackMerchantRecommendations derives rule-based recommendations from
// the merchant's weakest metrics.
func FallbackMerchantRecommendations(m model.ScoredMerchant) []Recommendation {
	var recs []Recommendation
	if m.DisputeRate > 0.1 {
		recs = append(recs, Recommendation{
			Title:       "Lower the dispute rate",
			Description: "Investigate common dispute causes and tighten order fulfilment or billing descriptions.",
		})
	}
	if m.EngagementScore < 0.5 {
		recs = append(recs, Recommendation{
			Title:       "Increase engagement",
			Description: "Run targeted campaigns and respond to customer feedback to lift the engagement score.",
		})
	}
	if m.ComplianceScore < 0.8 {
		recs = append(recs, Recommendation{
			Title:       "Close compliance gaps",
			Description: "Complete outstanding compliance checks to avoid penalties against the trust score.",
		})
	}
	if m.TransactionVolume <= 1000 {
		recs = append(recs, Recommendation{
			Title:       "Grow transaction volume",
			Description: "Volume above 1000 earns a trust score bonus; expand payment acceptance to qualify.",
		})
	}
	if m.ExclusivityFlag != 1 {
		recs = append(recs, Recommendation{
			Title:       "Consider exclusive partnership",
			Description: "Exclusive partners receive a flat trust score bonus and better placement in rankings.",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Title:       "Maintain current standing",
			Description: "All metrics are strong; keep current practices to hold the loyalty tier.",
		})
	}
	return recs
}

// FallbackAnalysis is the canned result for an AI query that could not be
// processed.
func FallbackAnalysis() map[string]any {
	return map[string]any{"message": "Unable to process query."}
}

// FallbackChat is the canned chat reply per audience.
func FallbackChat(userType string) string {
	if userType == "merchant" {
		return "Merchant performance is summarized by the trust score, which combines repayment, dispute, default, engagement, compliance, and responsiveness metrics. Review the dashboard rankings for top performers and the per-merchant recommendations for improvement areas. AI analysis is currently unavailable; this is a rule-based summary."
	}
	return "Consumer payment activity is summarized by monthly collections and payment status mix. Compare expected and received amounts per month to spot collection gaps, and review failed payments for recurring causes. AI analysis is currently unavailable; this is a rule-based summary."
}
