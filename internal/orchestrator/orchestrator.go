package orchestrator

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/antoniostano/turncore/internal/emotion"
	"github.com/antoniostano/turncore/internal/responsecore"
	"github.com/antoniostano/turncore/internal/workerchan"
)

// AuditSink is the subset of audit.Store the Orchestrator needs (see
// internal/workerchan's metricsSink for the same decoupling pattern).
type AuditSink interface {
	SaveTurn(ctx context.Context, record AuditRecord) error
}

// AuditRecord mirrors audit.Record's fields without importing internal/audit,
// keeping this package's dependency surface to its own domain.
type AuditRecord struct {
	SessionID         string
	EmotionLabel      string
	EmotionConfidence float64
	ResponseSource    string
	AudioPresent      bool
	Warnings          []string
	TotalMS           float64
}

// MetricsSink is the subset of observability.Metrics the Orchestrator needs.
type MetricsSink interface {
	ObserveTurnOutcome(outcome string)
	ObserveTurnStage(stage string, d time.Duration)
	ObserveSubstitution(stage, cause string)
	ObserveEmotionConfidence(c float64)
	ObserveCombinedConfidence(c float64)
}

// Config holds the Orchestrator's deadlines and history bounds
// (spec.md §4.5, §5; SPEC_FULL.md §6).
type Config struct {
	TurnDeadline          time.Duration
	EmotionStageDeadline  time.Duration
	ResponseStageDeadline time.Duration
	TTSStageDeadline      time.Duration
	HistoryMaxPairs       int
	HistoryMaxChars       int
	ResponseModelID       string
}

// Orchestrator is the Turn Orchestrator (C5): it owns all fan-out and
// deadlines for a turn (spec.md §4.5).
type Orchestrator struct {
	cfg      Config
	emotion  EmotionCaller
	response ResponseCaller
	tts      TTSCaller
	audit    AuditSink
	metrics  MetricsSink
}

func New(cfg Config, emotionCaller EmotionCaller, responseCaller ResponseCaller, ttsCaller TTSCaller, audit AuditSink, metrics MetricsSink) *Orchestrator {
	if cfg.TurnDeadline <= 0 {
		cfg.TurnDeadline = 20 * time.Second
	}
	if cfg.EmotionStageDeadline <= 0 {
		cfg.EmotionStageDeadline = 3 * time.Second
	}
	if cfg.ResponseStageDeadline <= 0 {
		cfg.ResponseStageDeadline = 10 * time.Second
	}
	if cfg.TTSStageDeadline <= 0 {
		cfg.TTSStageDeadline = 8 * time.Second
	}
	if cfg.HistoryMaxPairs <= 0 {
		cfg.HistoryMaxPairs = 4
	}
	if cfg.HistoryMaxChars <= 0 {
		cfg.HistoryMaxChars = 1600
	}
	return &Orchestrator{
		cfg:      cfg,
		emotion:  emotionCaller,
		response: responseCaller,
		tts:      ttsCaller,
		audit:    audit,
		metrics:  metrics,
	}
}

// RunTurn implements spec.md §4.5's per-turn algorithm. It returns either a
// (possibly degraded) TurnResult or one of the two terminal errors
// (ErrInputInvalid, *EnqueueFailedError) -- spec.md §8's core invariant.
func (o *Orchestrator) RunTurn(parent context.Context, req TurnRequest) (TurnResult, error) {
	if req.SessionID == "" {
		return TurnResult{}, ErrInputInvalid
	}
	if req.Language == "" {
		req.Language = "en"
	}

	ctx, cancel := context.WithTimeout(parent, o.cfg.TurnDeadline)
	defer cancel()

	timings := make(map[string]float64)
	var warnings []string

	combined, enqueueErr := o.classifyEmotion(ctx, req, timings, &warnings)
	if enqueueErr != nil {
		return TurnResult{}, enqueueErr
	}

	response, enqueueErr := o.generateResponse(ctx, req, combined, timings, &warnings)
	if enqueueErr != nil {
		return TurnResult{}, enqueueErr
	}

	audio, enqueueErr := o.synthesizeSpeech(ctx, response, req.Language, timings, &warnings)
	if enqueueErr != nil {
		return TurnResult{}, enqueueErr
	}

	if ctx.Err() != nil {
		warnings = appendUnique(warnings, "turn_deadline_exceeded")
	}

	result := TurnResult{
		Emotion:  combined,
		Response: response,
		Audio:    audio,
		Timings:  timings,
		Warnings: warnings,
	}

	o.observeOutcome(result)
	o.saveAudit(req, result)

	return result, nil
}

func (o *Orchestrator) classifyEmotion(ctx context.Context, req TurnRequest, timings map[string]float64, warnings *[]string) (CombinedEmotion, error) {
	start := time.Now()
	stageCtx, cancel := context.WithTimeout(ctx, o.cfg.EmotionStageDeadline)
	defer cancel()

	var (
		text     TextEmotion
		textErr  error
		voice    VoiceEmotion
		voiceErr error
		ranVoice bool
	)

	var wg sync.WaitGroup
	if req.Text == "" && req.AudioRef == "" {
		text = TextEmotion{Label: "neutral", Confidence: 0.5}
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, textErr = o.emotion.ClassifyText(stageCtx, req.Text, req.Language)
		}()
	}

	if req.AudioRef != "" {
		ranVoice = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			voice, voiceErr = o.emotion.ClassifyVoice(stageCtx, req.AudioRef, req.Language)
		}()
	}
	wg.Wait()

	o.observeStage("emotion", time.Since(start), timings)

	if errors.Is(textErr, workerchan.ErrQueueFull) {
		return CombinedEmotion{}, &EnqueueFailedError{Worker: "emotion", RetryAfter: "1s"}
	}
	if textErr != nil {
		text = TextEmotion{Label: "neutral", Confidence: 0.5}
		*warnings = appendUnique(*warnings, "emotion_timeout")
		o.metrics.ObserveSubstitution("emotion", substitutionCause(textErr))
	}
	if ranVoice && errors.Is(voiceErr, workerchan.ErrQueueFull) {
		return CombinedEmotion{}, &EnqueueFailedError{Worker: "emotion", RetryAfter: "1s"}
	}
	if ranVoice && voiceErr != nil {
		voice = VoiceEmotion{Label: "neutral", Confidence: 0.5}
		o.metrics.ObserveSubstitution("emotion_voice", substitutionCause(voiceErr))
	}

	if text.Confidence < 0.4 {
		*warnings = appendUnique(*warnings, "low_text_confidence")
	}

	var combined CombinedEmotion
	if ranVoice {
		fused := emotion.Fuse(
			emotion.TextResult{Label: text.Label, Confidence: text.Confidence},
			emotion.VoiceResult{Label: voice.Label, Confidence: voice.Confidence},
		)
		combined = CombinedEmotion{
			Label:           fused.Label,
			Confidence:      clampConfidence(fused.Confidence),
			TextLabel:       text.Label,
			VoiceLabel:      voice.Label,
			TextConfidence:  text.Confidence,
			VoiceConfidence: voice.Confidence,
			Weights:         Weights{Text: fused.WeightText, Voice: fused.WeightVoice},
		}
	} else {
		combined = CombinedEmotion{
			Label:          text.Label,
			Confidence:     clampConfidence(text.Confidence),
			TextLabel:      text.Label,
			TextConfidence: text.Confidence,
			Weights:        Weights{Text: 1, Voice: 0},
		}
	}

	o.metrics.ObserveEmotionConfidence(text.Confidence)
	o.metrics.ObserveCombinedConfidence(combined.Confidence)

	return combined, nil
}

// clampConfidence enforces spec.md §3's invariant: confidence is always in
// [0.1, 0.95] at the Orchestrator boundary -- it never emits confidence 0.
func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 0.95 {
		return 0.95
	}
	return c
}

func (o *Orchestrator) generateResponse(ctx context.Context, req TurnRequest, combined CombinedEmotion, timings map[string]float64, warnings *[]string) (ResponseCandidate, error) {
	start := time.Now()
	stageCtx, cancel := context.WithTimeout(ctx, o.cfg.ResponseStageDeadline)
	defer cancel()

	historyLines := TruncateHistory(req.History, o.cfg.HistoryMaxPairs, o.cfg.HistoryMaxChars)
	candidate, err := o.response.Generate(stageCtx, req.Text, combined.Label, req.Language, historyLines)
	o.observeStage("response", time.Since(start), timings)

	if err == nil {
		return candidate, nil
	}

	if errors.Is(err, workerchan.ErrQueueFull) {
		return ResponseCandidate{}, &EnqueueFailedError{Worker: "response", RetryAfter: "1s"}
	}

	text, _ := responsecore.SelectFallback(combined.Label)
	fallback := ResponseCandidate{
		Text:           text,
		QualitySignals: toQualitySignals(responsecore.Score(text, combined.Label)),
		Source:         SourceFallback,
		ModelID:        o.cfg.ResponseModelID,
	}

	switch {
	case errors.Is(err, workerchan.ErrWorkerTimeout):
		*warnings = appendUnique(*warnings, "response_timeout")
	case errors.Is(err, workerchan.ErrWorkerCrashed):
		*warnings = appendUnique(*warnings, "response_worker_restart")
	default:
		*warnings = appendUnique(*warnings, "response_unavailable")
	}
	o.metrics.ObserveSubstitution("response", substitutionCause(err))

	return fallback, nil
}

func toQualitySignals(ind responsecore.Indicators) QualitySignals {
	return QualitySignals{
		Empathy:          ind.Empathy,
		Professionalism:  ind.Professionalism,
		TherapeuticValue: ind.TherapeuticValue,
	}
}

func (o *Orchestrator) synthesizeSpeech(ctx context.Context, response ResponseCandidate, language string, timings map[string]float64, warnings *[]string) (*string, error) {
	start := time.Now()
	stageCtx, cancel := context.WithTimeout(ctx, o.cfg.TTSStageDeadline)
	defer cancel()

	audio, err := o.tts.Synthesize(stageCtx, response.Text, language)
	o.observeStage("tts", time.Since(start), timings)

	if err == nil {
		return audio, nil
	}
	if errors.Is(err, workerchan.ErrQueueFull) {
		return nil, &EnqueueFailedError{Worker: "tts", RetryAfter: "1s"}
	}

	*warnings = appendUnique(*warnings, "tts_unavailable")
	o.metrics.ObserveSubstitution("tts", substitutionCause(err))
	return nil, nil
}

func (o *Orchestrator) observeStage(stage string, d time.Duration, timings map[string]float64) {
	timings[stage] = float64(d.Milliseconds())
	if o.metrics != nil {
		o.metrics.ObserveTurnStage(stage, d)
	}
}

func (o *Orchestrator) observeOutcome(result TurnResult) {
	if o.metrics == nil {
		return
	}
	outcome := "ok"
	if len(result.Warnings) > 0 {
		outcome = "degraded"
	}
	for _, w := range result.Warnings {
		if w == "turn_deadline_exceeded" {
			outcome = "deadline_exceeded"
			break
		}
	}
	o.metrics.ObserveTurnOutcome(outcome)
}

func (o *Orchestrator) saveAudit(req TurnRequest, result TurnResult) {
	if o.audit == nil {
		return
	}
	total := 0.0
	for _, v := range result.Timings {
		total += v
	}
	record := AuditRecord{
		SessionID:         req.SessionID,
		EmotionLabel:      result.Emotion.Label,
		EmotionConfidence: result.Emotion.Confidence,
		ResponseSource:    string(result.Response.Source),
		AudioPresent:      result.Audio != nil,
		Warnings:          result.Warnings,
		TotalMS:           total,
	}
	// Best-effort: a failed audit write never fails the turn (spec.md §1:
	// audit is a supplemental quality-review trail, not the turn's result).
	if err := o.audit.SaveTurn(context.Background(), record); err != nil {
		log.Printf("orchestrator: audit write failed for session %s: %v", req.SessionID, err)
	}
}

func substitutionCause(err error) string {
	switch {
	case errors.Is(err, workerchan.ErrWorkerTimeout):
		return "timeout"
	case errors.Is(err, workerchan.ErrWorkerCrashed):
		return "crashed"
	case errors.Is(err, workerchan.ErrWorkerProtocol):
		return "protocol"
	case errors.Is(err, workerchan.ErrWorkerUnavailable):
		return "unavailable"
	case errors.Is(err, workerchan.ErrDraining):
		return "draining"
	case errors.Is(err, workerchan.ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
