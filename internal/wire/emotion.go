// Package wire defines the line-delimited JSON request/reply schemas shared
// by the worker channel (internal/workerchan) and the three worker binaries
// (cmd/emotionworker, cmd/responseworker, cmd/ttsworker). One JSON object per
// line; no other stdout output is permitted from a worker process.
package wire

import "github.com/antoniostano/turncore/internal/audio"

// EmotionMode selects the classification path (spec.md §4.2).
type EmotionMode string

const (
	ModeText             EmotionMode = "text"
	ModeVoice            EmotionMode = "voice"
	ModeCombined         EmotionMode = "combined"
	ModeTextWithContext  EmotionMode = "text_with_context"
)

// EmotionRequest is the emotion worker's single-line stdin request.
type EmotionRequest struct {
	Mode      EmotionMode `json:"mode"`
	Text      string      `json:"text,omitempty"`
	AudioPath string      `json:"audio_path,omitempty"`
	Language  string      `json:"language,omitempty"`
}

// EmotionTextReply is the reply shape for mode=text and the text component
// of mode=combined/text_with_context.
type EmotionTextReply struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"allScores,omitempty"`
	RawLabel   string             `json:"rawLabel,omitempty"`
}

// EmotionVoiceReply is the reply shape for mode=voice and the voice
// component of mode=combined.
type EmotionVoiceReply struct {
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Features   audio.Features `json:"features"`
}

// EmotionCombinedReply is the reply shape for mode=combined.
type EmotionCombinedReply struct {
	Combined CombinedEmotion   `json:"combined"`
	Text     EmotionTextReply  `json:"text"`
	Voice    EmotionVoiceReply `json:"voice"`
}

// CombinedEmotion is the fused result embedded in EmotionCombinedReply.
type CombinedEmotion struct {
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	WeightText  float64 `json:"weightText"`
	WeightVoice float64 `json:"weightVoice"`
}

// EmotionTextWithContextReply is the reply shape for
// mode=text_with_context: the text result plus salient context tokens.
type EmotionTextWithContextReply struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"allScores,omitempty"`
	RawLabel   string             `json:"rawLabel,omitempty"`
	Context    []string           `json:"context"`
}

// EmotionErrorReply is returned in place of any of the above when
// classification itself fails (spec.md §4.2's failure semantics: never
// bubbles up as a worker crash).
type EmotionErrorReply struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

// NeutralFallback is the fixed degraded reply on any inference exception.
func NeutralFallback(err error) EmotionErrorReply {
	return EmotionErrorReply{Label: "neutral", Confidence: 0.5, Error: err.Error()}
}
