package main

import "testing"

func TestSanitizeSynthesisTextEscapesQuotes(t *testing.T) {
	got := sanitizeSynthesisText(`she said "hi" and it's fine`)
	want := `she said ""hi"" and it''s fine`
	if got != want {
		t.Fatalf("sanitizeSynthesisText() = %q, want %q", got, want)
	}
}

func TestSanitizeSynthesisTextClampsWithEllipsis(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	got := sanitizeSynthesisText(string(long))
	if len(got) != maxSynthesisChars+len("...") {
		t.Fatalf("len(sanitized) = %d, want %d", len(got), maxSynthesisChars+len("..."))
	}
	if got[len(got)-3:] != "..." {
		t.Fatalf("sanitized text does not end in an ellipsis: %q", got)
	}
}

func TestSanitizeSynthesisTextShortInputUnchanged(t *testing.T) {
	got := sanitizeSynthesisText("hello there")
	if got != "hello there" {
		t.Fatalf("sanitizeSynthesisText() = %q, want unchanged short input", got)
	}
}
