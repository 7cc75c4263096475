// Package scoring implements the trust score formulas and the tier and risk
// classifications. All functions are pure: no I/O, no state, no randomness.
package scoring

import (
	"math"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// Config selects between the current formulas and their earlier revisions.
// The zero value is the legacy behavior; use Default() for the canonical one.
type Config struct {
	// VolumeBonus enables the merchant volume bonus: transaction volume
	// above 1000 adds min(log10(volume), 5) points.
	VolumeBonus bool
	// LegacyTiers switches to the earlier three-tier ladder without
	// Platinum (Gold >=90, Silver >=80, Bronze otherwise).
	LegacyTiers bool
}

// Default returns the canonical configuration: volume bonus on, four-tier
// ladder.
func Default() Config {
	return Config{VolumeBonus: true}
}

// CustomerTrustScore computes the trust score for a customer.
//
//	score = 100 * (0.5*repaymentRate + 0.3*(1-defaultRate) + 0.2*(1-min(disputes/10, 1)))
//
// Inputs outside their domains are clamped rather than rejected, so the
// result is always in [0,100]. Rounded to 2 decimals.
func CustomerTrustScore(repaymentRate float64, disputeCount int, defaultRate float64) float64 {
	rr := clamp01(repaymentRate)
	dr := clamp01(defaultRate)
	nd := NormalizeDisputeCount(disputeCount)

	score := (rr*0.5 + (1-dr)*0.3 + (1-nd)*0.2) * 100
	return round2(clamp(score, 0, 100))
}

// NormalizeDisputeCount maps a raw dispute count onto [0,1]. Ten or more
// disputes saturate at 1.
func NormalizeDisputeCount(disputeCount int) float64 {
	if disputeCount < 0 {
		disputeCount = 0
	}
	return math.Min(float64(disputeCount)/10, 1)
}

// MerchantTrustScore computes the trust score for a merchant profile.
//
// Base weighted sum (x100): repayment 30%, inverse default 20%, inverse
// dispute 10%, engagement 15%, compliance 15%, responsiveness 10%. Exclusive
// partners get a flat +5. With VolumeBonus enabled, transaction volume above
// 1000 adds min(log10(volume), 5) points. Capped at 100, rounded to 2
// decimals.
func (c Config) MerchantTrustScore(p model.MerchantProfile) float64 {
	score := (clamp01(p.RepaymentRate)*0.3 +
		(1-clamp01(p.DefaultRate))*0.2 +
		(1-clamp01(p.DisputeRate))*0.1 +
		clamp01(p.EngagementScore)*0.15 +
		clamp01(p.ComplianceScore)*0.15 +
		clamp01(p.ResponsivenessScore)*0.1) * 100

	if p.ExclusivityFlag == 1 {
		score += 5
	}

	if c.VolumeBonus && p.TransactionVolume > 1000 {
		score += math.Min(math.Log10(p.TransactionVolume), 5)
	}

	return round2(math.Min(score, 100))
}

// LoyaltyTier assigns a tier from a trust score. The ladder is evaluated
// top-down, first match wins; boundaries are inclusive on the lower bound.
func (c Config) LoyaltyTier(trustScore float64) model.LoyaltyTier {
	if !c.LegacyTiers && trustScore >= 95 {
		return model.TierPlatinum
	}
	switch {
	case trustScore >= 90:
		return model.TierGold
	case trustScore >= 80:
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

// Risk classifies an entity from its trust score, default rate, and dispute
// metric. The dispute metric must be pre-normalized to [0,1] by the caller
// (use NormalizeDisputeCount for raw counts).
func Risk(trustScore, defaultRate, disputeMetric float64) model.RiskLevel {
	switch {
	case trustScore >= 85 && defaultRate < 0.1 && disputeMetric < 0.1:
		return model.RiskLow
	case trustScore >= 70:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// ScoreCustomer attaches trust score and loyalty tier to customer metrics.
func (c Config) ScoreCustomer(m model.CustomerMetrics) model.ScoredCustomer {
	trust := CustomerTrustScore(m.RepaymentRate, m.DisputeCount, m.DefaultRate)
	return model.ScoredCustomer{
		CustomerMetrics: m,
		TrustScore:      trust,
		LoyaltyTier:     c.LoyaltyTier(trust),
	}
}

// ScoreMerchant attaches trust score and loyalty tier to a merchant profile.
func (c Config) ScoreMerchant(p model.MerchantProfile) model.ScoredMerchant {
	trust := c.MerchantTrustScore(p)
	return model.ScoredMerchant{
		MerchantProfile: p,
		TrustScore:      trust,
		LoyaltyTier:     c.LoyaltyTier(trust),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
