package emotion

import "strings"

// MaxSalientTokens is the cap on tokens extracted for mode=text_with_context
// (spec.md open question: the worker's reply carries a bounded token list
// rather than the raw context string).
const MaxSalientTokens = 10

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "for": true,
	"with": true, "about": true, "as": true, "it": true, "its": true, "this": true,
	"that": true, "i": true, "you": true, "he": true, "she": true, "we": true,
	"they": true, "my": true, "your": true, "me": true, "do": true, "did": true,
	"so": true, "just": true, "have": true, "has": true, "had": true, "not": true,
	"can": true, "could": true, "will": true, "would": true, "im": true,
}

// SalientTokens extracts up to MaxSalientTokens terms from the given turns
// (the emotion worker passes the current utterance) for
// mode=text_with_context: lowercase, strip punctuation, drop
// stopwords, rank by term frequency (ties broken by first occurrence), and
// dedupe (spec.md §9 Open Questions resolution).
func SalientTokens(turns []string) []string {
	counts := make(map[string]int)
	order := make([]string, 0, 32)

	for _, turn := range turns {
		for _, raw := range strings.Fields(turn) {
			tok := stripPunct(strings.ToLower(raw))
			if tok == "" || stopwords[tok] {
				continue
			}
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sorted := make([]string, len(order))
	copy(sorted, order)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && counts[sorted[j]] > counts[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if len(sorted) > MaxSalientTokens {
		sorted = sorted[:MaxSalientTokens]
	}
	return sorted
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
