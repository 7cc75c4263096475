// Package ranking sorts and truncates scored entities by one or more keys.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// DefaultLimit caps result lists when the caller does not ask for a size.
const DefaultLimit = 10

type Key string

const (
	KeyTrustScore  Key = "TrustScore"
	KeyLoyaltyTier Key = "LoyaltyTier"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ValidationError reports malformed sort parameters. It maps to a client
// error; no computation happens after one is raised.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// Spec is an ordered list of sort keys, each paired positionally with a
// direction. Keys and Dirs always have equal length.
type Spec struct {
	Keys []Key
	Dirs []Direction
}

// ParseSpec validates comma-separated sort key and direction lists. Empty
// inputs default to TrustScore descending. Unknown keys, unknown directions,
// and mismatched list lengths are rejected, never silently defaulted.
func ParseSpec(sortBy, sortOrder string) (Spec, error) {
	if sortBy == "" {
		sortBy = string(KeyTrustScore)
	}
	if sortOrder == "" {
		sortOrder = string(Desc)
	}

	rawKeys := strings.Split(sortBy, ",")
	rawDirs := strings.Split(sortOrder, ",")
	if len(rawKeys) != len(rawDirs) {
		return Spec{}, &ValidationError{
			Param:   "sort_order",
			Message: fmt.Sprintf("%d sort keys but %d directions", len(rawKeys), len(rawDirs)),
		}
	}

	spec := Spec{
		Keys: make([]Key, len(rawKeys)),
		Dirs: make([]Direction, len(rawDirs)),
	}
	for i, raw := range rawKeys {
		switch k := Key(strings.TrimSpace(raw)); k {
		case KeyTrustScore, KeyLoyaltyTier:
			spec.Keys[i] = k
		default:
			return Spec{}, &ValidationError{
				Param:   "sort_by",
				Message: fmt.Sprintf("unknown sort key %q", strings.TrimSpace(raw)),
			}
		}
	}
	for i, raw := range rawDirs {
		switch d := Direction(strings.TrimSpace(raw)); d {
		case Asc, Desc:
			spec.Dirs[i] = d
		default:
			return Spec{}, &ValidationError{
				Param:   "sort_order",
				Message: fmt.Sprintf("unknown direction %q", strings.TrimSpace(raw)),
			}
		}
	}
	return spec, nil
}

// Scored is any entity carrying a trust score and a loyalty tier.
type Scored interface {
	Score() float64
	Tier() model.LoyaltyTier
}

// Rank returns a new slice sorted by the spec and truncated from the head to
// limit entries. The sort is stable: ties keep their original order.
// LoyaltyTier compares by ordinal, never alphabetically. A non-positive
// limit falls back to DefaultLimit.
func Rank[T Scored](items []T, spec Spec, limit int) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		for n, key := range spec.Keys {
			var less, greater bool
			switch key {
			case KeyLoyaltyTier:
				less = out[i].Tier().Ordinal() < out[j].Tier().Ordinal()
				greater = out[i].Tier().Ordinal() > out[j].Tier().Ordinal()
			default:
				less = out[i].Score() < out[j].Score()
				greater = out[i].Score() > out[j].Score()
			}
			if !less && !greater {
				continue
			}
			if spec.Dirs[n] == Asc {
				return less
			}
			return greater
		}
		return false
	})

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}
