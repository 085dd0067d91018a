package responsecore

import "testing"

func TestQualityGateRejectsTooShort(t *testing.T) {
	if got := QualityGate("I hear you"); got != ReasonTooShort {
		t.Fatalf("got %q, want %q", got, ReasonTooShort)
	}
}

func TestQualityGateRejectsFillerOpening(t *testing.T) {
	if got := QualityGate("Totally agree that sounds really difficult for you today"); got != ReasonFillerOpening {
		t.Fatalf("got %q, want %q", got, ReasonFillerOpening)
	}
}

func TestQualityGateRejectsGenericAgreement(t *testing.T) {
	candidate := "That is a great way to look at things honestly and I support it"
	if got := QualityGate(candidate); got != ReasonGenericAgree {
		t.Fatalf("got %q, want %q", got, ReasonGenericAgree)
	}
}

func TestQualityGateRejectsMissingEmpathyWord(t *testing.T) {
	candidate := "The weather today is quite pleasant and sunny outside for once"
	if got := QualityGate(candidate); got != ReasonNoEmpathyWord {
		t.Fatalf("got %q, want %q", got, ReasonNoEmpathyWord)
	}
}

func TestQualityGatePassesGoodCandidate(t *testing.T) {
	candidate := "It sounds like this has been difficult, and I understand why you'd feel that way. What would help right now?"
	if got := QualityGate(candidate); got != ReasonNone {
		t.Fatalf("expected pass, got reject reason %q", got)
	}
	if !Passes(candidate) {
		t.Fatalf("Passes() should agree with QualityGate()")
	}
}

func TestQualityGateIsIdempotent(t *testing.T) {
	candidate := "Totally agree, exactly"
	first := QualityGate(candidate)
	second := QualityGate(candidate)
	if first != second {
		t.Fatalf("gate not idempotent: %q vs %q", first, second)
	}
}

func TestScriptedFallbacksAreWellFormed(t *testing.T) {
	for _, key := range FallbackKeys {
		text, ok := fallbackLibrary[key]
		if !ok {
			t.Fatalf("missing fallback entry for key %q", key)
		}
		if len(text) < 20 {
			t.Fatalf("fallback %q too short", key)
		}
		if text[len(text)-1] != '?' {
			t.Fatalf("fallback %q does not end in a question: %q", key, text)
		}
	}
}
