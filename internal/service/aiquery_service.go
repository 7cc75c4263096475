package service

import (
	"context"
	"fmt"

	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/repository"
)

// recordCap bounds how many records are sent to the adapter per query.
const recordCap = 200

// AIQueryService routes free-text analytics queries and chat prompts through
// the narrator. repo may be nil when the cache is disabled; chat then runs
// without a data context.
type AIQueryService struct {
	customers *CustomerService
	merchants *MerchantService
	narrator  *ai.Narrator
	repo      *repository.DashboardRepository
}

func NewAIQueryService(customers *CustomerService, merchants *MerchantService, narrator *ai.Narrator, repo *repository.DashboardRepository) *AIQueryService {
	return &AIQueryService{customers: customers, merchants: merchants, narrator: narrator, repo: repo}
}

// Query classifies the query, gathers the matching scored records, and asks
// the narrator for a JSON analysis. Failures degrade to the canned result,
// never to an error.
func (s *AIQueryService) Query(ctx context.Context, query string) (*dto.AIQueryResponse, error) {
	entity := s.narrator.Classify(ctx, query)

	var records any
	switch entity {
	case "merchants":
		scored, err := s.merchants.Scored()
		if err != nil {
			return nil, err
		}
		if len(scored) > recordCap {
			scored = scored[:recordCap]
		}
		records = scored
	default:
		scored, err := s.customers.Scored()
		if err != nil {
			return nil, err
		}
		if len(scored) > recordCap {
			scored = scored[:recordCap]
		}
		records = scored
	}

	return &dto.AIQueryResponse{
		Entity: entity,
		Query:  query,
		Result: s.narrator.Analyze(ctx, entity, query, records),
	}, nil
}

// Chat answers a user-typed prompt with recent payment statistics as context.
func (s *AIQueryService) Chat(ctx context.Context, userType, prompt string) (*dto.ChatResponse, error) {
	contextData := s.chatContext(ctx, userType)
	reply, status := s.narrator.Chat(ctx, userType, prompt, contextData)
	return &dto.ChatResponse{Response: reply, UserType: userType, Status: status}, nil
}

// chatContext summarizes the cache for the prompt. Without a cache the
// context is empty and the narrator answers from the prompt alone.
func (s *AIQueryService) chatContext(ctx context.Context, userType string) string {
	if s.repo == nil {
		return ""
	}

	stats, err := s.repo.RecentPaymentStats(ctx, 500)
	if err != nil || stats.Total == 0 {
		return ""
	}

	return fmt.Sprintf(
		"Recent %s payments (%d records, %s to %s): %d paid, %d pending, %d failed, average amount %.2f.",
		userType, stats.Total, stats.FirstDate, stats.LastDate,
		stats.Paid, stats.Pending, stats.Failed, stats.AvgAmount)
}
