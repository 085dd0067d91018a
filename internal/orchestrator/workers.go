package orchestrator

import "context"

// TextEmotion is the Orchestrator-local shape of an emotion worker's
// mode=text reply (spec.md §4.2).
type TextEmotion struct {
	Label      string
	Confidence float64
}

// VoiceEmotion is the Orchestrator-local shape of an emotion worker's
// mode=voice reply (spec.md §4.2).
type VoiceEmotion struct {
	Label      string
	Confidence float64
}

// EmotionCaller is the Orchestrator's view of the Emotion Worker (C2),
// letting tests substitute a fake without depending on internal/workerchan
// or internal/wire directly -- the same interface-at-the-boundary pattern
// internal/httpapi uses for its Orchestrator dependency.
type EmotionCaller interface {
	ClassifyText(ctx context.Context, text, language string) (TextEmotion, error)
	ClassifyVoice(ctx context.Context, audioPath, language string) (VoiceEmotion, error)
}

// ResponseCaller is the Orchestrator's view of the Response Worker (C3).
type ResponseCaller interface {
	Generate(ctx context.Context, userText, emotionLabel, language string, history []string) (ResponseCandidate, error)
}

// TTSCaller is the Orchestrator's view of the TTS Worker (C4). A nil
// audioBase64 with a nil error means synthesis produced no audio; errors
// are always stage-local (spec.md §4.4).
type TTSCaller interface {
	Synthesize(ctx context.Context, text, language string) (audioBase64 *string, err error)
}
