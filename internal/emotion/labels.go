// Package emotion implements the text, voice, and combined emotion
// classification algorithms of the emotion worker (spec.md §4.2).
package emotion

// Labels is the closed ~28-label taxonomy (spec.md GLOSSARY). Order matters
// only for deterministic iteration in tests; classification never depends
// on it beyond "first occurrence wins" tie-breaking.
var Labels = []string{
	"admiration", "amusement", "anger", "annoyance", "approval", "caring",
	"confusion", "curiosity", "desire", "disappointment", "disapproval",
	"disgust", "embarrassment", "excitement", "fear", "gratitude", "grief",
	"joy", "love", "nervousness", "optimism", "pride", "realization",
	"relief", "remorse", "sadness", "surprise", "neutral",
}

// Aliases maps downstream alias labels to their canonical underlying label,
// per the GLOSSARY ("stress" and "anxiety" are recognized aliases mapped
// from nervousness/fear context). Nothing in this module reads it: the
// fallback library keeps its own label mapping in responsecore.KeyForEmotion,
// and the classifier itself never emits an alias as rawLabel.
var Aliases = map[string][]string{
	"stress":  {"nervousness", "fear"},
	"anxiety": {"fear", "nervousness"},
}

// labelSet is a fast membership index over Labels.
var labelSet = func() map[string]bool {
	m := make(map[string]bool, len(Labels))
	for _, l := range Labels {
		m[l] = true
	}
	return m
}()

// IsKnownLabel reports whether label is part of the closed taxonomy.
func IsKnownLabel(label string) bool {
	return labelSet[label]
}

// Remap applies the spec's text-path post-processing rule: "realization"
// and any unknown technical label are remapped to "neutral"; everything
// else passes through unchanged.
func Remap(rawLabel string) string {
	if rawLabel == "realization" {
		return "neutral"
	}
	if !IsKnownLabel(rawLabel) {
		return "neutral"
	}
	return rawLabel
}
