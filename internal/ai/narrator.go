package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	summarySystem = "You are a financial analyst. Write a short natural-language summary (2-3 sentences) of the entity's trust and loyalty profile from the provided metrics. Respond with plain text only."

	recommendationsSystem = "You are a financial advisor. From the provided metrics, produce actionable recommendations. Respond with STRICT VALID JSON only: a list of objects with exactly the keys \"title\" and \"description\". No markdown, no text outside JSON."

	classificationSystem = "You are a classifier. Given a user query, decide if it is about 'customers' or 'merchants'. Respond with ONLY one word: 'customers' or 'merchants'."

	analysisSystem = "You are a JSON-only data analyst. Answer the user query from the provided data sample. Respond with STRICT VALID JSON only. Do NOT include markdown, explanations, or text outside JSON. If sorting or filtering is requested, include the transformed data in the JSON."
)

// Narrator resolves enrichment requests against the adapter, falling back to
// deterministic output on any failure. It is the single place the
// degrade-gracefully policy lives.
type Narrator struct {
	adapter Adapter
}

func NewNarrator(adapter Adapter) *Narrator {
	if adapter == nil {
		adapter = Disabled{}
	}
	return &Narrator{adapter: adapter}
}

// Summary returns adapter-written text or the fallback.
func (n *Narrator) Summary(ctx context.Context, entityType string, record any, fallback string) string {
	out, err := n.adapter.Enrich(ctx, TaskSummary, entityType, summarySystem, record)
	if err != nil || strings.TrimSpace(out) == "" {
		n.logFailure(TaskSummary, err)
		return fallback
	}
	return strings.TrimSpace(out)
}

// Recommendations returns validated adapter recommendations or the fallback.
func (n *Narrator) Recommendations(ctx context.Context, entityType string, record any, fallback []Recommendation) []Recommendation {
	out, err := n.adapter.Enrich(ctx, TaskRecommendations, entityType, recommendationsSystem, record)
	if err != nil {
		n.logFailure(TaskRecommendations, err)
		return fallback
	}
	recs, err := ParseRecommendations(out)
	if err != nil {
		n.logFailure(TaskRecommendations, err)
		return fallback
	}
	return recs
}

// Classify buckets a free-text query as "customers" or "merchants",
// defaulting to customers on any failure or unexpected output.
func (n *Narrator) Classify(ctx context.Context, query string) string {
	out, err := n.adapter.Enrich(ctx, TaskClassification, "auto", classificationSystem, map[string]string{"query": query})
	if err != nil {
		n.logFailure(TaskClassification, err)
		return "customers"
	}
	switch answer := strings.ToLower(strings.TrimSpace(out)); answer {
	case "customers", "merchants":
		return answer
	default:
		return "customers"
	}
}

// Analyze forwards a query plus a data preview and strictly parses the
// result as a JSON object.
func (n *Narrator) Analyze(ctx context.Context, entityType, query string, records any) map[string]any {
	payload := map[string]any{
		"query":   query,
		"records": records,
	}
	out, err := n.adapter.Enrich(ctx, TaskAnalysis, entityType, analysisSystem, payload)
	if err != nil {
		n.logFailure(TaskAnalysis, err)
		return FallbackAnalysis()
	}
	result, err := ParseAnalysis(out)
	if err != nil {
		n.logFailure(TaskAnalysis, err)
		return FallbackAnalysis()
	}
	return result
}

// Chat answers a contextual prompt. The second return value reports whether
// the adapter or the fallback produced the reply.
func (n *Narrator) Chat(ctx context.Context, userType, prompt, contextData string) (string, string) {
	system := "You are an AI assistant specialized in analyzing " + userType +
		" payment data. Use the provided data context to answer accurately with actionable insights.\n\nData context:\n" + contextData
	out, err := n.adapter.Enrich(ctx, TaskChat, userType, system, map[string]string{"prompt": prompt})
	if err != nil || strings.TrimSpace(out) == "" {
		n.logFailure(TaskChat, err)
		return FallbackChat(userType), "fallback"
	}
	return strings.TrimSpace(out), "success"
}

func (n *Narrator) logFailure(task Task, err error) {
	if err == nil || err == ErrUnavailable {
		return
	}
	log.Warn().Err(err).Str("task", string(task)).Msg("enrichment failed, using fallback")
}
