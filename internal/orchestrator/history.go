package orchestrator

import "fmt"

// TruncateHistory bounds history to at most maxPairs entries and
// maxChars total characters, dropping the oldest pairs first (spec.md §3's
// invariant), then serializes each surviving pair into the flat string list
// the wire contract carries (wire.ResponseRequest.History).
func TruncateHistory(history []HistoryPair, maxPairs, maxChars int) []string {
	pairs := history
	if maxPairs > 0 && len(pairs) > maxPairs {
		pairs = pairs[len(pairs)-maxPairs:]
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = fmt.Sprintf("User: %s\nAssistant: %s", p.User, p.Assistant)
	}

	if maxChars <= 0 {
		return lines
	}
	total := 0
	for _, l := range lines {
		total += len(l)
	}
	for total > maxChars && len(lines) > 0 {
		total -= len(lines[0])
		lines = lines[1:]
	}
	return lines
}
