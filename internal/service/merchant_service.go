package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/metrics"
	"github.com/snaptrust/trust-growth-backend/internal/model"
	"github.com/snaptrust/trust-growth-backend/internal/ranking"
	"github.com/snaptrust/trust-growth-backend/internal/scoring"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

// MerchantService derives scored merchants from the loyalty feed.
type MerchantService struct {
	loader   *store.Loader
	cfg      scoring.Config
	narrator *ai.Narrator
}

func NewMerchantService(loader *store.Loader, cfg scoring.Config, narrator *ai.Narrator) *MerchantService {
	return &MerchantService{loader: loader, cfg: cfg, narrator: narrator}
}

// Scored loads, rounds, and scores all merchants in feed order. Profiles are
// rounded to presentation precision before scoring.
func (s *MerchantService) Scored() ([]model.ScoredMerchant, error) {
	profiles, err := s.loader.Merchants()
	if err != nil {
		return nil, fmt.Errorf("score merchants: %w", err)
	}

	scored := make([]model.ScoredMerchant, len(profiles))
	for i, p := range profiles {
		scored[i] = s.cfg.ScoreMerchant(metrics.RoundMerchantProfile(p))
	}
	return scored, nil
}

// List returns the ranked list view.
func (s *MerchantService) List(spec ranking.Spec, limit int) ([]dto.MerchantSummary, error) {
	scored, err := s.Scored()
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(scored, spec, limit)
	out := make([]dto.MerchantSummary, len(ranked))
	for i, m := range ranked {
		out[i] = dto.MerchantSummary{
			MerchantID:      m.MerchantID,
			MerchantName:    m.MerchantName,
			ExclusivityFlag: m.ExclusivityFlag,
			TrustScore:      m.TrustScore,
			LoyaltyTier:     m.LoyaltyTier,
		}
	}
	return out, nil
}

// Get returns the full profile view with risk, summary, and recommendations.
func (s *MerchantService) Get(ctx context.Context, merchantID string) (*dto.MerchantDetail, error) {
	m, err := s.find(merchantID)
	if err != nil {
		return nil, err
	}

	return &dto.MerchantDetail{
		ScoredMerchant:  *m,
		RiskScore:       scoring.Risk(m.TrustScore, m.DefaultRate, m.DisputeRate),
		Summary:         s.narrator.Summary(ctx, "merchant", m, ai.FallbackMerchantSummary(*m)),
		Recommendations: s.narrator.Recommendations(ctx, "merchant", m, ai.FallbackMerchantRecommendations(*m)),
	}, nil
}

// Explain returns the natural-language explanation of the merchant's scores.
func (s *MerchantService) Explain(ctx context.Context, merchantID string) (*dto.MerchantExplanation, error) {
	m, err := s.find(merchantID)
	if err != nil {
		return nil, err
	}

	return &dto.MerchantExplanation{
		MerchantID:  m.MerchantID,
		Explanation: s.narrator.Summary(ctx, "merchant", m, ai.FallbackMerchantSummary(*m)),
	}, nil
}

// Recommendations returns adapter or rule-based recommendations.
func (s *MerchantService) Recommendations(ctx context.Context, merchantID string) (*dto.MerchantRecommendations, error) {
	m, err := s.find(merchantID)
	if err != nil {
		return nil, err
	}

	return &dto.MerchantRecommendations{
		MerchantID:      m.MerchantID,
		Recommendations: s.narrator.Recommendations(ctx, "merchant", m, ai.FallbackMerchantRecommendations(*m)),
	}, nil
}

// History returns a synthetic five-point trend ending at the current scores.
// The loyalty feed carries no time dimension, so the series is backfilled
// with fixed per-step decrements, floored at zero.
func (s *MerchantService) History(merchantID string) (*dto.MerchantHistory, error) {
	m, err := s.find(merchantID)
	if err != nil {
		return nil, err
	}

	const points = 5
	trend := dto.MerchantTrend{
		TrustScore:      make([]float64, points),
		EngagementScore: make([]float64, points),
		ComplianceScore: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		back := float64(points - 1 - i)
		trend.TrustScore[i] = round2(math.Max(m.TrustScore-2*back, 0))
		trend.EngagementScore[i] = round2(math.Max(m.EngagementScore-0.05*back, 0))
		trend.ComplianceScore[i] = round2(math.Max(m.ComplianceScore-0.03*back, 0))
	}

	return &dto.MerchantHistory{MerchantID: m.MerchantID, History: trend}, nil
}

// Benchmark compares one merchant against descriptive statistics computed
// over the whole fleet.
func (s *MerchantService) Benchmark(merchantID string) (*dto.MerchantBenchmark, error) {
	scored, err := s.Scored()
	if err != nil {
		return nil, err
	}

	var target *model.ScoredMerchant
	for i := range scored {
		if scored[i].MerchantID == merchantID {
			target = &scored[i]
			break
		}
	}
	if target == nil {
		return nil, ErrNotFound
	}

	columns := map[string]func(m model.ScoredMerchant) float64{
		"TrustScore":          func(m model.ScoredMerchant) float64 { return m.TrustScore },
		"RepaymentRate":       func(m model.ScoredMerchant) float64 { return m.RepaymentRate },
		"DisputeRate":         func(m model.ScoredMerchant) float64 { return m.DisputeRate },
		"DefaultRate":         func(m model.ScoredMerchant) float64 { return m.DefaultRate },
		"TransactionVolume":   func(m model.ScoredMerchant) float64 { return m.TransactionVolume },
		"EngagementScore":     func(m model.ScoredMerchant) float64 { return m.EngagementScore },
		"ComplianceScore":     func(m model.ScoredMerchant) float64 { return m.ComplianceScore },
		"ResponsivenessScore": func(m model.ScoredMerchant) float64 { return m.ResponsivenessScore },
	}

	benchmarks := make(map[string]dto.Stats, len(columns))
	values := make([]float64, len(scored))
	for name, pick := range columns {
		for i, m := range scored {
			values[i] = pick(m)
		}
		benchmarks[name] = describe(values)
	}

	return &dto.MerchantBenchmark{
		MerchantID:      target.MerchantID,
		MerchantMetrics: *target,
		Benchmarks:      benchmarks,
	}, nil
}

func (s *MerchantService) find(merchantID string) (*model.ScoredMerchant, error) {
	scored, err := s.Scored()
	if err != nil {
		return nil, err
	}
	for i := range scored {
		if scored[i].MerchantID == merchantID {
			return &scored[i], nil
		}
	}
	return nil, ErrNotFound
}

// describe computes count, mean, sample standard deviation, min, quartiles,
// and max over a non-empty series. Quartiles use linear interpolation
// between closest ranks.
func describe(values []float64) dto.Stats {
	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return dto.Stats{
		Count: n,
		Mean:  round2(mean),
		Std:   round2(std),
		Min:   sorted[0],
		P25:   round2(quantile(sorted, 0.25)),
		P50:   round2(quantile(sorted, 0.5)),
		P75:   round2(quantile(sorted, 0.75)),
		Max:   sorted[n-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
