package responsecore

import (
	"strings"
)

// Scoring word sets (spec.md §6), distinct from the quality gate's
// required-keyword set in qualitygate.go.
var (
	empathyWords = []string{
		"understand", "feel", "hear", "valid", "difficult", "support",
		"listen", "care", "acknowledge", "brave", "courage",
	}
	professionalWords = []string{
		"explore", "therapy", "coping", "strategies", "resources",
		"professional", "process", "together", "work through",
	}
	therapeuticWords = []string{
		"safe", "space", "feelings", "emotions", "experience", "important",
		"matter", "alone", "support",
	}
)

// Indicators holds the three quality signals returned alongside every
// response (spec.md §3 ResponseCandidate.qualitySignals, §4.3's formulas).
type Indicators struct {
	Empathy          float64
	Professionalism  float64
	TherapeuticValue float64
}

// Score computes Indicators for response, conditioned on the classified
// emotionLabel (spec.md §4.3's empathy bonus: "+0.1 if the emotion label
// itself appears").
func Score(response, emotionLabel string) Indicators {
	lower := strings.ToLower(response)

	empathy := 0.3 + 0.15*float64(countMatches(lower, empathyWords))
	if emotionLabel != "" && strings.Contains(lower, strings.ToLower(emotionLabel)) {
		empathy += 0.1
	}
	empathy = min1(empathy)

	professionalism := min1(0.4 + 0.20*float64(countMatches(lower, professionalWords)))

	therapeutic := 0.5 + 0.20*float64(countMatches(lower, therapeuticWords))
	if strings.Contains(response, "?") {
		therapeutic += 0.1
	}
	therapeutic = min1(therapeutic)

	return Indicators{
		Empathy:          empathy,
		Professionalism:  professionalism,
		TherapeuticValue: therapeutic,
	}
}

// countMatches counts how many distinct words from set occur in lower
// (spec.md's "|empathyWords ∩ tokens|" — an intersection of the word set
// against the response, not a per-occurrence count).
func countMatches(lower string, set []string) int {
	n := 0
	for _, w := range set {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
