// Package risk scores free-text content and triage urgency against the
// configured keyword heuristics. It decides when a crisis alert is warranted.
package risk

import (
	"strings"

	"unicare/backend/internal/config"
)

// ScoreContent returns the summed weight of every risk keyword present in the
// text. Matching is case-insensitive substring matching.
func ScoreContent(text string) int {
	lowered := strings.ToLower(text)
	score := 0
	for keyword, weight := range config.RiskWeights {
		if strings.Contains(lowered, keyword) {
			score += weight
		}
	}
	return score
}

// ScoreUrgency returns the base score for a self-reported urgency level.
// Unknown levels score 0.
func ScoreUrgency(urgency string) int {
	return config.UrgencyWeights[urgency]
}

// IsCrisis reports whether a combined score crosses the alert threshold.
func IsCrisis(score int) bool {
	return score >= config.CrisisScoreThreshold
}
