package service

import (
	"github.com/snaptrust/trust-growth-backend/internal/model"
	"github.com/snaptrust/trust-growth-backend/internal/ranking"
)

// LeaderboardService ranks full scored records by multi-key sort specs.
// Unlike the list endpoints it returns complete rows, not summaries.
type LeaderboardService struct {
	customers *CustomerService
	merchants *MerchantService
}

func NewLeaderboardService(customers *CustomerService, merchants *MerchantService) *LeaderboardService {
	return &LeaderboardService{customers: customers, merchants: merchants}
}

func (s *LeaderboardService) Customers(spec ranking.Spec, limit int) ([]model.ScoredCustomer, error) {
	scored, err := s.customers.Scored()
	if err != nil {
		return nil, err
	}
	return ranking.Rank(scored, spec, limit), nil
}

func (s *LeaderboardService) Merchants(spec ranking.Spec, limit int) ([]model.ScoredMerchant, error) {
	scored, err := s.merchants.Scored()
	if err != nil {
		return nil, err
	}
	return ranking.Rank(scored, spec, limit), nil
}
