// Package ai provides the narrative enrichment layer: an injected adapter
// for LLM calls plus deterministic fallbacks. Enrichment is decoration;
// scoring is the contract. A failed or unavailable adapter never surfaces
// as an error to callers.
package ai

import (
	"context"
	"errors"
)

// Task names the kind of enrichment requested from the adapter.
type Task string

const (
	TaskSummary         Task = "summary"
	TaskRecommendations Task = "recommendations"
	TaskClassification  Task = "classification"
	TaskAnalysis        Task = "analysis"
	TaskChat            Task = "chat"
)

// ErrUnavailable means no adapter is configured. Callers resolve it to their
// fallback like any other enrichment failure.
var ErrUnavailable = errors.New("ai adapter unavailable")

// Adapter turns a task plus a data payload into free text. Output is
// untrusted: callers must validate it and fall back on anything unusable.
type Adapter interface {
	Enrich(ctx context.Context, task Task, entityType, system string, payload any) (string, error)
}

// Disabled is the null adapter used when no API key is configured and in
// tests. Every call reports ErrUnavailable, which resolves to fallbacks.
type Disabled struct{}

func (Disabled) Enrich(context.Context, Task, string, string, any) (string, error) {
	return "", ErrUnavailable
}
