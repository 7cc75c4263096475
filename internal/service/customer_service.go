package service

import (
	"context"
	"fmt"

	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/metrics"
	"github.com/snaptrust/trust-growth-backend/internal/model"
	"github.com/snaptrust/trust-growth-backend/internal/ranking"
	"github.com/snaptrust/trust-growth-backend/internal/scoring"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

// CustomerService derives scored customers from the payments feed. Every
// call re-reads and re-aggregates; nothing derived is cached.
type CustomerService struct {
	loader   *store.Loader
	cfg      scoring.Config
	narrator *ai.Narrator
}

func NewCustomerService(loader *store.Loader, cfg scoring.Config, narrator *ai.Narrator) *CustomerService {
	return &CustomerService{loader: loader, cfg: cfg, narrator: narrator}
}

// Scored loads, aggregates, and scores all customers in first-seen order.
func (s *CustomerService) Scored() ([]model.ScoredCustomer, error) {
	txns, err := s.loader.Payments()
	if err != nil {
		return nil, fmt.Errorf("score customers: %w", err)
	}

	aggregated := metrics.AggregateCustomers(txns)
	scored := make([]model.ScoredCustomer, len(aggregated))
	for i, m := range aggregated {
		scored[i] = s.cfg.ScoreCustomer(m)
	}
	return scored, nil
}

// List returns the ranked list view.
func (s *CustomerService) List(spec ranking.Spec, limit int) ([]dto.CustomerSummary, error) {
	scored, err := s.Scored()
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(scored, spec, limit)
	out := make([]dto.CustomerSummary, len(ranked))
	for i, c := range ranked {
		out[i] = dto.CustomerSummary{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			TrustScore:   c.TrustScore,
			LoyaltyTier:  c.LoyaltyTier,
		}
	}
	return out, nil
}

// Get returns the full metrics view with risk and summary enrichment.
func (s *CustomerService) Get(ctx context.Context, customerID string) (*dto.CustomerDetail, error) {
	c, err := s.find(customerID)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerDetail{
		ScoredCustomer: *c,
		RiskScore:      s.risk(*c),
		Summary:        s.narrator.Summary(ctx, "customer", c, ai.FallbackCustomerSummary(*c)),
	}, nil
}

// Explain returns the natural-language explanation of the customer's scores.
func (s *CustomerService) Explain(ctx context.Context, customerID string) (*dto.CustomerExplanation, error) {
	c, err := s.find(customerID)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerExplanation{
		CustomerID:  c.CustomerID,
		Explanation: s.narrator.Summary(ctx, "customer", c, ai.FallbackCustomerSummary(*c)),
	}, nil
}

// History re-aggregates the customer's transactions per payment date and
// scores each point. History points keep full precision.
func (s *CustomerService) History(customerID string) (*dto.CustomerHistory, error) {
	txns, err := s.loader.Payments()
	if err != nil {
		return nil, fmt.Errorf("customer history: %w", err)
	}

	points := metrics.CustomerHistory(txns, customerID)
	if points == nil {
		return nil, ErrNotFound
	}

	entries := make([]dto.CustomerHistoryEntry, len(points))
	for i, p := range points {
		trust := scoring.CustomerTrustScore(p.RepaymentRate, p.DisputeCount, p.DefaultRate)
		entries[i] = dto.CustomerHistoryEntry{
			HistoryPoint: p,
			TrustScore:   trust,
			LoyaltyTier:  s.cfg.LoyaltyTier(trust),
		}
	}

	return &dto.CustomerHistory{CustomerID: customerID, History: entries}, nil
}

// Recommendations returns adapter or rule-based recommendations.
func (s *CustomerService) Recommendations(ctx context.Context, customerID string) (*dto.CustomerRecommendations, error) {
	c, err := s.find(customerID)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerRecommendations{
		CustomerID:      c.CustomerID,
		Recommendations: s.narrator.Recommendations(ctx, "customer", c, ai.FallbackCustomerRecommendations(*c)),
	}, nil
}

// find returns the first group matching the ID. A customer split across
// multiple name groups resolves to its first-seen group.
func (s *CustomerService) find(customerID string) (*model.ScoredCustomer, error) {
	scored, err := s.Scored()
	if err != nil {
		return nil, err
	}
	for i := range scored {
		if scored[i].CustomerID == customerID {
			return &scored[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *CustomerService) risk(c model.ScoredCustomer) model.RiskLevel {
	// The engine expects a pre-normalized dispute metric.
	return scoring.Risk(c.TrustScore, c.DefaultRate, scoring.NormalizeDisputeCount(c.DisputeCount))
}
