package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/metrics"
	"github.com/snaptrust/trust-growth-backend/internal/ranking"
	"github.com/snaptrust/trust-growth-backend/internal/repository"
	"github.com/snaptrust/trust-growth-backend/internal/scoring"
)

// ErrCacheDisabled is returned by dashboard endpoints when the service runs
// without the SQLite cache.
var ErrCacheDisabled = errors.New("dashboard cache is disabled")

// DashboardService assembles chart-ready aggregates from the SQLite cache.
// repo may be nil when the cache is disabled.
type DashboardService struct {
	repo *repository.DashboardRepository
	cfg  scoring.Config
}

func NewDashboardService(repo *repository.DashboardRepository, cfg scoring.Config) *DashboardService {
	return &DashboardService{repo: repo, cfg: cfg}
}

// Merchants builds the merchants dashboard. The three panels are independent
// queries and run concurrently. limit caps each ranked panel.
func (s *DashboardService) Merchants(ctx context.Context, limit int) (*dto.MerchantsDashboard, error) {
	if s.repo == nil {
		return nil, ErrCacheDisabled
	}
	if limit <= 0 {
		limit = ranking.DefaultLimit
	}

	var out dto.MerchantsDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		top, err := s.repo.TopMerchantsByPayments(gctx, limit)
		if err != nil {
			return err
		}
		out.TopMerchantsByPayments = top
		return nil
	})

	g.Go(func() error {
		mix, err := s.repo.PaymentStatusMix(gctx)
		if err != nil {
			return err
		}
		out.PaymentStatusMix = mix
		return nil
	})

	g.Go(func() error {
		profiles, err := s.repo.MerchantLoyalty(gctx)
		if err != nil {
			return err
		}

		points := make([]dto.TrustPoint, len(profiles))
		for i, p := range profiles {
			m := s.cfg.ScoreMerchant(metrics.RoundMerchantProfile(p))
			points[i] = dto.TrustPoint{
				Merchant:    m.MerchantName,
				TrustScore:  m.TrustScore,
				LoyaltyTier: m.LoyaltyTier,
			}
		}
		spec, _ := ranking.ParseSpec("TrustScore", "desc")
		out.TopMerchantTrust = ranking.Rank(points, spec, limit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Consumers builds the consumers dashboard: expected versus received
// collections per month, shaped as two line series.
func (s *DashboardService) Consumers(ctx context.Context) (*dto.ConsumersDashboard, error) {
	if s.repo == nil {
		return nil, ErrCacheDisabled
	}

	monthly, err := s.repo.MonthlyCollections(ctx)
	if err != nil {
		return nil, err
	}

	expected := dto.Series{ID: "expected", Data: make([]dto.SeriesPoint, len(monthly))}
	received := dto.Series{ID: "received", Data: make([]dto.SeriesPoint, len(monthly))}
	for i, m := range monthly {
		expected.Data[i] = dto.SeriesPoint{X: m.Month, Y: m.Expected}
		received.Data[i] = dto.SeriesPoint{X: m.Month, Y: m.Received}
	}

	return &dto.ConsumersDashboard{MonthlyCollections: []dto.Series{expected, received}}, nil
}
