package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// fakeAdapter returns a fixed reply or error, recording the last task.
type fakeAdapter struct {
	reply    string
	err      error
	lastTask Task
}

func (f *fakeAdapter) Enrich(_ context.Context, task Task, _, _ string, _ any) (string, error) {
	f.lastTask = task
	return f.reply, f.err
}

func sampleCustomer() model.ScoredCustomer {
	return model.ScoredCustomer{
		CustomerMetrics: model.CustomerMetrics{
			CustomerID:    "C001",
			CustomerName:  "Ada Lovelace",
			RepaymentRate: 0.95,
			DisputeCount:  1,
			DefaultRate:   0.02,
		},
		TrustScore:  92.5,
		LoyaltyTier: model.TierGold,
	}
}

func TestNarratorSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("happy: adapter text is returned trimmed", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "  A reliable customer.  "})
		assert.Equal(t, "A reliable customer.", n.Summary(ctx, "customer", sampleCustomer(), "fallback"))
	})

	t.Run("bad: adapter error resolves to fallback", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{err: errors.New("quota exceeded")})
		assert.Equal(t, "fallback", n.Summary(ctx, "customer", sampleCustomer(), "fallback"))
	})

	t.Run("bad: blank adapter output resolves to fallback", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "   "})
		assert.Equal(t, "fallback", n.Summary(ctx, "customer", sampleCustomer(), "fallback"))
	})

	t.Run("edge: nil adapter behaves as disabled", func(t *testing.T) {
		n := NewNarrator(nil)
		assert.Equal(t, "fallback", n.Summary(ctx, "customer", sampleCustomer(), "fallback"))
	})
}

func TestNarratorRecommendations(t *testing.T) {
	ctx := context.Background()
	fallback := []Recommendation{{Title: "t", Description: "d"}}

	t.Run("happy: valid JSON list passes validation", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: `[{"title":"Grow","description":"Do more."}]`})
		got := n.Recommendations(ctx, "merchant", nil, fallback)
		require.Len(t, got, 1)
		assert.Equal(t, "Grow", got[0].Title)
	})

	t.Run("happy: one trailing-comma normalization pass", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: `[{"title":"Grow","description":"Do more.",},]`})
		got := n.Recommendations(ctx, "merchant", nil, fallback)
		require.Len(t, got, 1)
	})

	t.Run("bad: non-list output triggers fallback", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: `{"title":"Grow"}`})
		assert.Equal(t, fallback, n.Recommendations(ctx, "merchant", nil, fallback))
	})

	t.Run("bad: entries missing fields trigger fallback", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: `[{"title":"Grow"}]`})
		assert.Equal(t, fallback, n.Recommendations(ctx, "merchant", nil, fallback))
	})

	t.Run("bad: prose output triggers fallback", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "Here are some ideas: grow."})
		assert.Equal(t, fallback, n.Recommendations(ctx, "merchant", nil, fallback))
	})
}

func TestNarratorClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("happy: recognized buckets pass through", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: " Merchants \n"})
		assert.Equal(t, "merchants", n.Classify(ctx, "top merchants by volume"))
	})

	t.Run("bad: unexpected output defaults to customers", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "both, probably"})
		assert.Equal(t, "customers", n.Classify(ctx, "who pays on time?"))
	})

	t.Run("bad: adapter failure defaults to customers", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{err: errors.New("timeout")})
		assert.Equal(t, "customers", n.Classify(ctx, "anything"))
	})
}

func TestNarratorAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("happy: strict JSON object", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: `{"answer": 42}`})
		got := n.Analyze(ctx, "customers", "q", nil)
		assert.Equal(t, float64(42), got["answer"])
	})

	t.Run("happy: fenced JSON is accepted after the single repair pass", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "```json\n{\"answer\": 1,}\n```"})
		got := n.Analyze(ctx, "customers", "q", nil)
		assert.Equal(t, float64(1), got["answer"])
	})

	t.Run("bad: unparseable output yields the canned message", func(t *testing.T) {
		n := NewNarrator(&fakeAdapter{reply: "no json here"})
		assert.Equal(t, FallbackAnalysis(), n.Analyze(ctx, "customers", "q", nil))
	})
}

func TestFallbackDeterminism(t *testing.T) {
	c := sampleCustomer()

	t.Run("summaries repeat bit-for-bit", func(t *testing.T) {
		assert.Equal(t, FallbackCustomerSummary(c), FallbackCustomerSummary(c))
	})

	t.Run("recommendations repeat bit-for-bit", func(t *testing.T) {
		assert.Equal(t, FallbackCustomerRecommendations(c), FallbackCustomerRecommendations(c))
	})

	t.Run("chat fallback repeats bit-for-bit", func(t *testing.T) {
		assert.Equal(t, FallbackChat("merchant"), FallbackChat("merchant"))
		assert.NotEqual(t, FallbackChat("merchant"), FallbackChat("consumer"))
	})

	t.Run("healthy customer gets the maintain recommendation", func(t *testing.T) {
		recs := FallbackCustomerRecommendations(c)
		require.Len(t, recs, 1)
		assert.Equal(t, "Maintain current standing", recs[0].Title)
	})

	t.Run("weak merchant accumulates targeted recommendations", func(t *testing.T) {
		m := model.ScoredMerchant{
			MerchantProfile: model.MerchantProfile{
				DisputeRate:       0.2,
				EngagementScore:   0.3,
				ComplianceScore:   0.9,
				TransactionVolume: 500,
			},
			TrustScore:  55,
			LoyaltyTier: model.TierBronze,
		}
		recs := FallbackMerchantRecommendations(m)
		titles := make([]string, len(recs))
		for i, r := range recs {
			titles[i] = r.Title
		}
		assert.Contains(t, titles, "Lower the dispute rate")
		assert.Contains(t, titles, "Increase engagement")
		assert.Contains(t, titles, "Grow transaction volume")
		assert.NotContains(t, titles, "Close compliance gaps")
	})
}
