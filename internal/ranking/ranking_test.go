package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

func scored(id string, trust float64, tier model.LoyaltyTier) model.ScoredCustomer {
	return model.ScoredCustomer{
		CustomerMetrics: model.CustomerMetrics{CustomerID: id},
		TrustScore:      trust,
		LoyaltyTier:     tier,
	}
}

func ids(items []model.ScoredCustomer) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.CustomerID
	}
	return out
}

func TestParseSpec(t *testing.T) {
	t.Run("happy: defaults to TrustScore desc", func(t *testing.T) {
		spec, err := ParseSpec("", "")
		require.NoError(t, err)
		assert.Equal(t, []Key{KeyTrustScore}, spec.Keys)
		assert.Equal(t, []Direction{Desc}, spec.Dirs)
	})

	t.Run("happy: multi-key comma lists", func(t *testing.T) {
		spec, err := ParseSpec("LoyaltyTier,TrustScore", "desc,asc")
		require.NoError(t, err)
		assert.Equal(t, []Key{KeyLoyaltyTier, KeyTrustScore}, spec.Keys)
		assert.Equal(t, []Direction{Desc, Asc}, spec.Dirs)
	})

	t.Run("bad: unknown sort key", func(t *testing.T) {
		_, err := ParseSpec("CustomerName", "asc")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sort_by", verr.Param)
	})

	t.Run("bad: unknown direction", func(t *testing.T) {
		_, err := ParseSpec("TrustScore", "down")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sort_order", verr.Param)
	})

	t.Run("bad: mismatched list lengths", func(t *testing.T) {
		_, err := ParseSpec("LoyaltyTier,TrustScore", "desc")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestRank(t *testing.T) {
	t.Run("happy: multi-key tier desc then trust asc", func(t *testing.T) {
		items := []model.ScoredCustomer{
			scored("A", 80, model.TierGold),
			scored("B", 80, model.TierSilver),
			scored("C", 90, model.TierSilver),
		}
		spec, err := ParseSpec("LoyaltyTier,TrustScore", "desc,asc")
		require.NoError(t, err)

		got := Rank(items, spec, 10)
		assert.Equal(t, []string{"A", "B", "C"}, ids(got))
	})

	t.Run("happy: tier sorts by ordinal, not alphabetically", func(t *testing.T) {
		// Alphabetical descending would put Silver above Platinum.
		items := []model.ScoredCustomer{
			scored("S", 85, model.TierSilver),
			scored("P", 96, model.TierPlatinum),
			scored("B", 60, model.TierBronze),
			scored("G", 91, model.TierGold),
		}
		spec, err := ParseSpec("LoyaltyTier", "desc")
		require.NoError(t, err)

		got := Rank(items, spec, 10)
		assert.Equal(t, []string{"P", "G", "S", "B"}, ids(got))
	})

	t.Run("happy: stable sort breaks ties by insertion order", func(t *testing.T) {
		items := []model.ScoredCustomer{
			scored("first", 80, model.TierSilver),
			scored("second", 80, model.TierSilver),
			scored("third", 80, model.TierSilver),
		}
		spec, err := ParseSpec("TrustScore", "desc")
		require.NoError(t, err)

		got := Rank(items, spec, 10)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got))
	})

	t.Run("happy: limit truncates from the head", func(t *testing.T) {
		items := []model.ScoredCustomer{
			scored("A", 70, model.TierBronze),
			scored("B", 95, model.TierPlatinum),
			scored("C", 85, model.TierSilver),
		}
		spec, err := ParseSpec("", "")
		require.NoError(t, err)

		got := Rank(items, spec, 2)
		assert.Equal(t, []string{"B", "C"}, ids(got))
	})

	t.Run("edge: limit beyond length returns everything", func(t *testing.T) {
		items := []model.ScoredCustomer{scored("A", 70, model.TierBronze)}
		spec, _ := ParseSpec("", "")
		assert.Len(t, Rank(items, spec, 50), 1)
	})

	t.Run("edge: input slice is not mutated", func(t *testing.T) {
		items := []model.ScoredCustomer{
			scored("A", 10, model.TierBronze),
			scored("B", 90, model.TierGold),
		}
		spec, _ := ParseSpec("", "")
		_ = Rank(items, spec, 10)
		assert.Equal(t, "A", items[0].CustomerID)
	})
}
