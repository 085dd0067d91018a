package responsecore

import (
	"strings"
	"testing"
)

func TestAssemblePromptIncludesFramingAndUserText(t *testing.T) {
	p := AssemblePrompt("I can't sleep before my exam", "nervousness", nil, 0)
	if !strings.Contains(p, "anxious") {
		t.Fatalf("expected anxiety framing in prompt: %q", p)
	}
	if !strings.Contains(p, "I can't sleep before my exam") {
		t.Fatalf("expected user text in prompt: %q", p)
	}
	if !strings.HasSuffix(p, "Therapist:") {
		t.Fatalf("expected trailing role tag: %q", p)
	}
}

func TestAssemblePromptTruncatesOldestHistoryFirst(t *testing.T) {
	history := []string{
		"User: first\nTherapist: reply one",
		"User: second\nTherapist: reply two",
		"User: third\nTherapist: reply three",
	}
	p := AssemblePrompt("current message", "general", history, 12)
	if strings.Contains(p, "first") {
		t.Fatalf("expected oldest history line dropped: %q", p)
	}
}
