// Package orchestrator implements the Turn Orchestrator (spec.md §4.5): it
// owns all fan-out and deadlines for a turn, calling the emotion, response,
// and TTS workers through internal/workerchan supervisors and assembling
// the final TurnResult.
package orchestrator

// HistoryPair is one prior user/assistant exchange (spec.md §3).
type HistoryPair struct {
	User      string
	Assistant string
}

// TurnRequest is the input to the Orchestrator (spec.md §3).
type TurnRequest struct {
	Text      string
	AudioRef  string
	Language  string
	SessionID string
	History   []HistoryPair
}

// Weights records the fusion weights applied to a CombinedEmotion
// (spec.md §3).
type Weights struct {
	Text  float64
	Voice float64
}

// CombinedEmotion is the fused emotion result (spec.md §3).
type CombinedEmotion struct {
	Label           string
	Confidence      float64
	TextLabel       string
	VoiceLabel      string
	TextConfidence  float64
	VoiceConfidence float64
	Weights         Weights
}

// QualitySignals are the Response Worker's three scored quality metrics
// (spec.md §3/§4.3).
type QualitySignals struct {
	Empathy          float64
	Professionalism  float64
	TherapeuticValue float64
}

// ResponseSource identifies whether a response came from the model or the
// scripted fallback library (spec.md §3).
type ResponseSource string

const (
	SourceModel    ResponseSource = "model"
	SourceFallback ResponseSource = "fallback"
)

// ResponseCandidate is the Response Worker's output (spec.md §3).
type ResponseCandidate struct {
	Text           string
	QualitySignals QualitySignals
	Source         ResponseSource
	ModelID        string
}

// TurnResult is the Orchestrator's single terminal artifact for a turn
// (spec.md §3). Audio is nil when TTS failed or was skipped.
type TurnResult struct {
	Emotion  CombinedEmotion
	Response ResponseCandidate
	Audio    *string
	Timings  map[string]float64
	Warnings []string
}
