package emotion

import "github.com/antoniostano/turncore/internal/audio"

// VoiceResult is the emotion worker's reply for mode=voice (spec.md §4.2).
type VoiceResult struct {
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Features   audio.Features `json:"features"`
}

// ClassifyVoice applies the fixed decision table of spec.md §4.2 over the
// four scalar features. It never exceeds 0.70 confidence: the voice path
// exists to disambiguate the text path, not dominate it. An empty/missing
// feature set (zero duration) yields neutral at 0.5, matching "Missing or
// empty audio → neutral, 0.5".
func ClassifyVoice(f audio.Features) VoiceResult {
	if f.DurationSeconds == 0 {
		return VoiceResult{Label: "neutral", Confidence: 0.5, Features: f}
	}

	switch {
	case f.RMSEnergy > 0.1 && f.PitchHz > 200 && f.ZeroCrossingRate < 0.8:
		return VoiceResult{Label: "joy", Confidence: 0.70, Features: f}
	case f.RMSEnergy > 0.1 && (f.PitchHz <= 200 || f.ZeroCrossingRate >= 0.8):
		return VoiceResult{Label: "anger", Confidence: angerConfidence(f), Features: f}
	case f.RMSEnergy < 0.05:
		return VoiceResult{Label: "sadness", Confidence: 0.65, Features: f}
	case f.ZeroCrossingRate > 1.0:
		return VoiceResult{Label: "fear", Confidence: 0.60, Features: f}
	default:
		return VoiceResult{Label: "neutral", Confidence: 0.60, Features: f}
	}
}

// angerConfidence picks a value in the spec's 0.65-0.70 band, scaled by how
// far the zero-crossing rate exceeds 0.8 (pitch is not used) — the spec
// gives a range, not a single constant, for this branch.
func angerConfidence(f audio.Features) float64 {
	const lo, hi = 0.65, 0.70
	excess := 0.0
	if f.ZeroCrossingRate >= 0.8 {
		excess = (f.ZeroCrossingRate - 0.8) / 0.2
	}
	if excess > 1 {
		excess = 1
	}
	return lo + (hi-lo)*excess
}
