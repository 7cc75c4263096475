package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Recommendation is the only structure accepted from the adapter for
// recommendation tasks. Anything else triggers the fallback.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// normalizeJSON applies the single permitted repair pass: strip an optional
// markdown fence and remove trailing commas. No further heuristics.
func normalizeJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return trailingComma.ReplaceAllString(s, "$1")
}

// ParseRecommendations strictly parses adapter output as a list of
// {title, description} objects. Empty lists and entries missing either
// field are rejected.
func ParseRecommendations(raw string) ([]Recommendation, error) {
	var recs []Recommendation
	if err := json.Unmarshal([]byte(normalizeJSON(raw)), &recs); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("parse recommendations: empty list")
	}
	for i, r := range recs {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" {
			return nil, fmt.Errorf("parse recommendations: entry %d missing title or description", i)
		}
	}
	return recs, nil
}

// ParseAnalysis strictly parses adapter output as a JSON object.
func ParseAnalysis(raw string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(normalizeJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return out, nil
}
