package main

import (
	"testing"

	"github.com/antoniostano/turncore/internal/wire"
)

func TestPatternReplyWithoutAttemptedModelUsesPatternTag(t *testing.T) {
	reply := patternReply(wire.ResponseRequest{UserInput: "hi", Emotion: "sadness"}, "")
	if reply.Source != wire.SourceFallback {
		t.Fatalf("Source = %v, want %v", reply.Source, wire.SourceFallback)
	}
	model, _ := reply.ModelInfo["model"].(string)
	if model == "" || model[:len("pattern:")] != "pattern:" {
		t.Fatalf("ModelInfo[model] = %q, want a pattern:<key> tag when no model was attempted", model)
	}
}

func TestPatternReplyAfterModelRejectionKeepsAttemptedModel(t *testing.T) {
	reply := patternReply(wire.ResponseRequest{UserInput: "hi", Emotion: "sadness"}, "llama-therapist-7b")
	if reply.Source != wire.SourceFallback {
		t.Fatalf("Source = %v, want %v", reply.Source, wire.SourceFallback)
	}
	model, _ := reply.ModelInfo["model"].(string)
	// spec.md §3: "If the response source is fallback, modelId is still
	// populated with the model that was attempted" -- not the scripted
	// library's own pattern:<key> tag.
	if model != "llama-therapist-7b" {
		t.Fatalf("ModelInfo[model] = %q, want the attempted model name", model)
	}
}

func TestHandleFallsBackToPatternBackendWhenNoModelConfigured(t *testing.T) {
	reply := handle(options{backend: "pattern"}, wire.ResponseRequest{UserInput: "hi", Emotion: "joy"})
	if reply.Source != wire.SourceFallback {
		t.Fatalf("Source = %v, want %v", reply.Source, wire.SourceFallback)
	}
}
