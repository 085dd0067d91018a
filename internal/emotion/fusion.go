package emotion

// CombinedResult is the emotion worker's reply for mode=combined
// (spec.md §4.2/§3: CombinedEmotion).
type CombinedResult struct {
	Label           string  `json:"label"`
	Confidence      float64 `json:"confidence"`
	TextLabel       string  `json:"textLabel"`
	VoiceLabel      string  `json:"voiceLabel"`
	TextConfidence  float64 `json:"textConfidence"`
	VoiceConfidence float64 `json:"voiceConfidence"`
	WeightText      float64 `json:"weightText"`
	WeightVoice     float64 `json:"weightVoice"`
}

// Fuse implements the combined-path fusion rule of spec.md §4.2 exactly,
// including the 1.15 agreement boost and the 0.95 clamp (both taken
// verbatim per spec.md §9's Open Questions — no rationale given upstream).
func Fuse(text TextResult, voice VoiceResult) CombinedResult {
	wT, wV := 0.7, 0.3
	switch {
	case text.Confidence < 0.4:
		wT, wV = 0.3, 0.7
	case voice.Confidence < 0.4:
		wT, wV = 0.9, 0.1
	}

	var label string
	var confidence float64
	if text.Label == voice.Label {
		label = text.Label
		confidence = (wT*text.Confidence + wV*voice.Confidence) * 1.15
		if confidence > 0.95 {
			confidence = 0.95
		}
	} else {
		textWeighted := wT * text.Confidence
		voiceWeighted := wV * voice.Confidence
		if voiceWeighted > textWeighted {
			label = voice.Label
			confidence = voiceWeighted
		} else {
			// Ties go to text, per spec.md §4.2.
			label = text.Label
			confidence = textWeighted
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	return CombinedResult{
		Label:           label,
		Confidence:      confidence,
		TextLabel:       text.Label,
		VoiceLabel:      voice.Label,
		TextConfidence:  text.Confidence,
		VoiceConfidence: voice.Confidence,
		WeightText:      wT,
		WeightVoice:     wV,
	}
}
