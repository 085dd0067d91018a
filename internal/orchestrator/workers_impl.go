package orchestrator

import (
	"context"
	"time"

	"github.com/antoniostano/turncore/internal/wire"
)

// EmotionSupervisor is the subset of workerchan.Supervisor the emotion
// client needs; kept narrow so this file, not workerchan, dictates the
// Orchestrator's dependency surface.
type EmotionSupervisor interface {
	Call(ctx context.Context, timeout time.Duration, req, reply any) error
}

// EmotionClient adapts a workerchan.Supervisor running the emotion worker
// binary to the Orchestrator's EmotionCaller boundary interface.
type EmotionClient struct {
	sup     EmotionSupervisor
	timeout time.Duration
}

func NewEmotionClient(sup EmotionSupervisor, timeout time.Duration) *EmotionClient {
	return &EmotionClient{sup: sup, timeout: timeout}
}

func (c *EmotionClient) ClassifyText(ctx context.Context, text, language string) (TextEmotion, error) {
	req := wire.EmotionRequest{Mode: wire.ModeText, Text: text, Language: language}
	var reply wire.EmotionTextReply
	if err := c.sup.Call(ctx, c.timeout, req, &reply); err != nil {
		return TextEmotion{}, err
	}
	return TextEmotion{Label: reply.Label, Confidence: reply.Confidence}, nil
}

func (c *EmotionClient) ClassifyVoice(ctx context.Context, audioPath, language string) (VoiceEmotion, error) {
	req := wire.EmotionRequest{Mode: wire.ModeVoice, AudioPath: audioPath, Language: language}
	var reply wire.EmotionVoiceReply
	if err := c.sup.Call(ctx, c.timeout, req, &reply); err != nil {
		return VoiceEmotion{}, err
	}
	return VoiceEmotion{Label: reply.Label, Confidence: reply.Confidence}, nil
}

// ResponseSupervisor is the subset of workerchan.Supervisor the response
// client needs.
type ResponseSupervisor interface {
	Call(ctx context.Context, timeout time.Duration, req, reply any) error
}

// ResponseClient adapts a workerchan.Supervisor running the response worker
// binary to the Orchestrator's ResponseCaller boundary interface. A reply
// whose own quality gate rejected the model's draft (Source=fallback) is
// still a successful Call -- it is not stage-substituted here, since the
// worker already performed the substitution internally (spec.md §4.3).
type ResponseClient struct {
	sup     ResponseSupervisor
	timeout time.Duration
	modelID string
}

func NewResponseClient(sup ResponseSupervisor, timeout time.Duration, modelID string) *ResponseClient {
	return &ResponseClient{sup: sup, timeout: timeout, modelID: modelID}
}

func (c *ResponseClient) Generate(ctx context.Context, userText, emotionLabel, language string, history []string) (ResponseCandidate, error) {
	req := wire.ResponseRequest{UserInput: userText, Emotion: emotionLabel, History: history}
	var reply wire.ResponseReply
	if err := c.sup.Call(ctx, c.timeout, req, &reply); err != nil {
		return ResponseCandidate{}, err
	}

	source := SourceModel
	if reply.Source == wire.SourceFallback {
		source = SourceFallback
	}
	modelID := c.modelID
	if reply.ModelInfo != nil {
		if id, ok := reply.ModelInfo["model"].(string); ok && id != "" {
			modelID = id
		}
	}

	return ResponseCandidate{
		Text: reply.Response,
		QualitySignals: QualitySignals{
			Empathy:          reply.QualityIndicators.EmpathyScore,
			Professionalism:  reply.QualityIndicators.Professionalism,
			TherapeuticValue: reply.QualityIndicators.TherapeuticValue,
		},
		Source:  source,
		ModelID: modelID,
	}, nil
}

// TTSSupervisor is the subset of workerchan.Supervisor the TTS client needs.
type TTSSupervisor interface {
	Call(ctx context.Context, timeout time.Duration, req, reply any) error
}

// TTSClient adapts a workerchan.Supervisor running the TTS worker binary to
// the Orchestrator's TTSCaller boundary interface.
type TTSClient struct {
	sup     TTSSupervisor
	timeout time.Duration
}

func NewTTSClient(sup TTSSupervisor, timeout time.Duration) *TTSClient {
	return &TTSClient{sup: sup, timeout: timeout}
}

func (c *TTSClient) Synthesize(ctx context.Context, text, language string) (*string, error) {
	req := wire.TTSRequest{Text: text, Language: language}
	var reply wire.TTSReply
	if err := c.sup.Call(ctx, c.timeout, req, &reply); err != nil {
		return nil, err
	}
	if reply.AudioBase64 == nil {
		return nil, &ttsDegradedError{reason: reply.Error}
	}
	return reply.AudioBase64, nil
}

type ttsDegradedError struct{ reason string }

func (e *ttsDegradedError) Error() string {
	if e.reason == "" {
		return "tts_degraded"
	}
	return "tts_degraded: " + e.reason
}
