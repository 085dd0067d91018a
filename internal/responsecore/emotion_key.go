// Package responsecore implements the shared logic behind both Response
// Worker backends (spec.md §4.3): prompt assembly, the quality gate, the
// quality metric, and the closed fallback library. Both the model-backed
// and pattern-backed workers import this package so the Go code itself --
// not just the wire contract -- proves the two variants interchangeable.
package responsecore

// FallbackKeys is the closed set of emotion-specific framing/fallback keys
// (spec.md §6): "a missing emotion falls through to general".
var FallbackKeys = []string{
	"anxiety", "nervousness", "depression", "sadness", "stress",
	"anger", "fear", "joy", "admiration", "general",
}

// emotionToKey maps the emotion worker's native ~28-label taxonomy onto the
// closed fallback/framing key set. Several native labels share a key (e.g.
// annoyance and disgust both read as anger-adjacent for framing purposes);
// this is an implementer's choice the spec leaves open (SPEC_FULL.md §9).
var emotionToKey = map[string]string{
	"nervousness":    "nervousness",
	"fear":           "fear",
	"anger":          "anger",
	"annoyance":      "anger",
	"disapproval":    "anger",
	"disgust":        "anger",
	"sadness":        "sadness",
	"grief":          "sadness",
	"disappointment": "sadness",
	"remorse":        "sadness",
	"embarrassment":  "sadness",
	"joy":            "joy",
	"amusement":      "joy",
	"excitement":     "joy",
	"optimism":       "joy",
	"pride":          "joy",
	"relief":         "joy",
	"admiration":     "admiration",
	"gratitude":      "admiration",
	"love":           "admiration",
	"caring":         "admiration",
}

// KeyForEmotion resolves an emotion label (either a core taxonomy label, or
// one of the "stress"/"anxiety"/"depression" downstream aliases passed
// straight through from an upstream caller) to a FallbackKeys entry. Exact
// alias keys are honored first so a caller that already speaks in aliases
// is never remapped away from its intent; everything else falls through
// the core-label table, defaulting to "general".
func KeyForEmotion(label string) string {
	for _, k := range FallbackKeys {
		if k == label {
			return k
		}
	}
	if key, ok := emotionToKey[label]; ok {
		return key
	}
	return "general"
}
