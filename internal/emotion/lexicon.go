package emotion

import (
	"strings"
)

// TextResult is the emotion worker's reply for mode=text (spec.md §4.2).
type TextResult struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"allScores"`
	RawLabel   string             `json:"rawLabel"`
}

// MaxTextChars is the truncation bound applied before classification
// (spec.md §4.2: "Truncate input to 512 characters").
const MaxTextChars = 512

// lexicon is a deterministic keyword-weighted stand-in for the "transformer
// classifier" spec.md describes: no model weights are bundled or assumed
// downloadable (see SPEC_FULL.md §4.2), so each label owns a fixed phrase
// set and scores are a normalized count of matches, shaped like a softmax
// classifier's output distribution. MODEL_CACHE_DIR/emotion_lexicon.json
// can override this table; see LoadLexiconOverride in lexicon_source.go.
var lexicon = map[string][]string{
	"admiration":     {"amazing", "impressive", "well done", "respect", "admire", "inspiring"},
	"amusement":      {"haha", "funny", "hilarious", "lol", "amusing", "laughing"},
	"anger":          {"furious", "angry", "rage", "pissed", "hate this", "so mad"},
	"annoyance":      {"annoyed", "annoying", "irritat", "bothers me", "fed up"},
	"approval":       {"agree", "good idea", "sounds right", "approve", "makes sense"},
	"caring":         {"take care", "i care", "worried about you", "looking after"},
	"confusion":      {"confused", "don't understand", "not sure what", "puzzled", "unclear"},
	"curiosity":      {"curious", "wonder if", "i wonder", "what if", "interested in"},
	"desire":         {"wish i", "i want", "hope to", "longing for", "crave"},
	"disappointment": {"disappointed", "let down", "expected more", "disappointing"},
	"disapproval":    {"disagree", "bad idea", "not okay", "disapprove", "wrong way"},
	"disgust":        {"disgusting", "gross", "revolting", "ew", "nauseating"},
	"embarrassment":  {"embarrassed", "ashamed", "so awkward", "humiliated"},
	"excitement":     {"excited", "can't wait", "thrilled", "so pumped"},
	"fear":           {"scared", "afraid", "terrified", "frightened", "panic"},
	"gratitude":      {"thank you", "thanks", "grateful", "appreciate it"},
	"grief":          {"grieving", "loss of", "passed away", "mourning", "devastated"},
	"joy":            {"happy", "joyful", "delighted", "great day", "feeling good"},
	"love":           {"love you", "in love", "adore", "loving"},
	"nervousness":    {"nervous", "anxious", "worrying", "worried about", "uneasy", "can't sleep", "on edge"},
	"optimism":       {"hopeful", "looking forward", "will get better", "optimistic"},
	"pride":          {"proud of", "accomplished", "proud moment"},
	"realization":    {"i just realized", "now i see", "it hit me", "i understand now"},
	"relief":         {"relieved", "what a relief", "glad that's over"},
	"remorse":        {"sorry for", "regret", "shouldn't have", "my fault", "guilty about"},
	"sadness":        {"sad", "down", "depressed", "crying", "miserable", "heartbroken", "hopeless"},
	"surprise":       {"surprised", "shocked", "didn't expect", "wow", "unexpected"},
	"neutral":        {"okay", "fine", "nothing much", "just checking in"},
}

// ClassifyText implements spec.md §4.2's text path: truncate to
// MaxTextChars, score against the lexicon, remap the top label, and return
// a full distribution summing to ~1.
func ClassifyText(text string) TextResult {
	if len(text) > MaxTextChars {
		text = text[:MaxTextChars]
	}
	lower := strings.ToLower(text)

	raw := map[string]float64{}
	total := 0.0
	for label, phrases := range lexicon {
		score := 0.0
		for _, phrase := range phrases {
			score += float64(strings.Count(lower, phrase))
		}
		raw[label] = score
		total += score
	}

	allScores := make(map[string]float64, len(Labels))
	if total == 0 {
		// No lexical signal: uniform-ish distribution favoring neutral.
		base := 1.0 / float64(len(Labels))
		for _, l := range Labels {
			allScores[l] = base
		}
		allScores["neutral"] += 0.2
		normalize(allScores)
		return TextResult{
			Label:      "neutral",
			Confidence: allScores["neutral"],
			AllScores:  allScores,
			RawLabel:   "neutral",
		}
	}

	for _, l := range Labels {
		allScores[l] = raw[l] / total
	}
	normalize(allScores)

	rawLabel := argmax(allScores)
	label := Remap(rawLabel)
	return TextResult{
		Label:      label,
		Confidence: allScores[rawLabel],
		AllScores:  allScores,
		RawLabel:   rawLabel,
	}
}

func normalize(scores map[string]float64) {
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	if sum == 0 {
		return
	}
	for k, v := range scores {
		scores[k] = v / sum
	}
}

func argmax(scores map[string]float64) string {
	best := ""
	bestScore := -1.0
	for _, l := range Labels {
		if scores[l] > bestScore {
			bestScore = scores[l]
			best = l
		}
	}
	return best
}
