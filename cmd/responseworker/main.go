// Command responseworker is the long-lived response generation worker
// process (spec.md §4.3). It reads one wire.ResponseRequest per stdin line
// and writes a wire.ResponseReply per stdout line. Backend selection
// (RESPONSE_WORKER_BACKEND=model|pattern) mirrors SPEC_FULL.md §4.3's
// Open Question resolution: "pattern" (the scripted library, not run
// through the quality gate) is the default since no model weights are
// bundled; "model" shells out to a
// configured CLI and falls back to the same scripted library on any
// quality-gate rejection.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/antoniostano/turncore/internal/responsecore"
	"github.com/antoniostano/turncore/internal/wire"
)

type options struct {
	backend  string
	modelCLI string
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("responseworker: ")

	opts := options{
		backend:  envOrDefault("RESPONSE_WORKER_BACKEND", "pattern"),
		modelCLI: os.Getenv("RESPONSE_MODEL_CLI"),
	}

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)

	for in.Scan() {
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}
		var req wire.ResponseRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("malformed request: %v", err)
			continue
		}
		if err := out.Encode(handle(opts, req)); err != nil {
			log.Printf("encode reply: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin read error: %v", err)
	}
}

func handle(opts options, req wire.ResponseRequest) wire.ResponseReply {
	if opts.backend == "model" && opts.modelCLI != "" {
		if reply, ok := tryModel(opts, req); ok {
			return reply
		}
		return patternReply(req, opts.modelCLI)
	}
	return patternReply(req, "")
}

// tryModel assembles a prompt with responsecore.AssemblePrompt, shells out
// to the configured CLI, and runs the candidate through
// responsecore's quality gate. Any failure -- process error, empty output, or a
// quality-gate rejection -- falls through to the scripted library
// (spec.md §4.3's quality-gate-then-fallback rule).
func tryModel(opts options, req wire.ResponseRequest) (wire.ResponseReply, bool) {
	prompt := responsecore.AssemblePrompt(req.UserInput, req.Emotion, req.History, responsecore.MaxPromptTokens)

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.modelCLI)
	cmd.Stdin = strings.NewReader(prompt)
	rawOut, err := cmd.Output()
	if err != nil {
		log.Printf("model cli failed: %v", err)
		return wire.ResponseReply{}, false
	}

	candidate := responsecore.ExtractResponse(string(rawOut), prompt)
	if reason := responsecore.QualityGate(candidate); reason != responsecore.ReasonNone {
		log.Printf("model candidate rejected by quality gate: %s", reason)
		return wire.ResponseReply{}, false
	}

	indicators := responsecore.Score(candidate, req.Emotion)
	return wire.ResponseReply{
		Response:   candidate,
		Confidence: 0.8,
		Emotion:    req.Emotion,
		Source:     wire.SourceModel,
		QualityIndicators: wire.QualityIndicators{
			EmpathyScore:     indicators.Empathy,
			Professionalism:  indicators.Professionalism,
			TherapeuticValue: indicators.TherapeuticValue,
		},
		ModelInfo: map[string]any{"model": opts.modelCLI},
	}, true
}

// patternReply builds the scripted/quality-gated fallback reply. attemptedModel
// is the model CLI that was tried and rejected before falling back here, or ""
// when the pattern backend is the configured backend outright (no model was
// ever attempted). spec.md §3's invariant ("if the response source is
// fallback, modelId is still populated with the model that was attempted")
// means the reply must still name that attempted model rather than the
// scripted library's own key.
func patternReply(req wire.ResponseRequest, attemptedModel string) wire.ResponseReply {
	text, key := responsecore.GeneratePattern(req.UserInput, req.Emotion)
	indicators := responsecore.Score(text, req.Emotion)
	modelInfo := "pattern:" + key
	if attemptedModel != "" {
		modelInfo = attemptedModel
	}
	return wire.ResponseReply{
		Response:   text,
		Confidence: 0.6,
		Emotion:    req.Emotion,
		Source:     wire.SourceFallback,
		QualityIndicators: wire.QualityIndicators{
			EmpathyScore:     indicators.Empathy,
			Professionalism:  indicators.Professionalism,
			TherapeuticValue: indicators.TherapeuticValue,
		},
		ModelInfo: map[string]any{"model": modelInfo},
	}
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
