package emotion

import (
	"strings"
	"testing"
)

func TestClassifyTextTruncatesTo512Chars(t *testing.T) {
	long := strings.Repeat("a", 1000)
	r := ClassifyText(long)
	if r.AllScores == nil {
		t.Fatalf("AllScores is nil")
	}
	// Truncation itself isn't directly observable from the result, but the
	// function must not panic or hang on oversized input; combined with the
	// MaxTextChars check below this locks the contract down.
	if MaxTextChars != 512 {
		t.Fatalf("MaxTextChars = %d, want 512", MaxTextChars)
	}
}

func TestClassifyTextAllScoresCoversFullLabelSet(t *testing.T) {
	r := ClassifyText("I keep worrying about my exam tomorrow and can't sleep")
	if len(r.AllScores) != len(Labels) {
		t.Fatalf("len(AllScores) = %d, want %d", len(r.AllScores), len(Labels))
	}
	for _, l := range Labels {
		if _, ok := r.AllScores[l]; !ok {
			t.Fatalf("AllScores missing label %q", l)
		}
	}
}

func TestClassifyTextDetectsNervousness(t *testing.T) {
	r := ClassifyText("I keep worrying about my exam tomorrow and can't sleep")
	if r.Label != "nervousness" {
		t.Fatalf("Label = %q, want nervousness", r.Label)
	}
	if r.RawLabel != "nervousness" {
		t.Fatalf("RawLabel = %q, want nervousness", r.RawLabel)
	}
}

func TestClassifyTextRemapsRealizationToNeutral(t *testing.T) {
	r := ClassifyText("I just realized now i see it hit me")
	if r.RawLabel != "realization" {
		t.Fatalf("RawLabel = %q, want realization", r.RawLabel)
	}
	if r.Label != "neutral" {
		t.Fatalf("Label = %q, want neutral (remapped from realization)", r.Label)
	}
}

func TestClassifyTextNoSignalFallsBackToNeutral(t *testing.T) {
	r := ClassifyText("zzz qwerty flibbertigibbet")
	if r.Label != "neutral" {
		t.Fatalf("Label = %q, want neutral for no lexical signal", r.Label)
	}
	if r.Confidence <= 0 {
		t.Fatalf("Confidence = %v, want > 0", r.Confidence)
	}
}

func TestRemapUnknownLabel(t *testing.T) {
	if got := Remap("some_unknown_tag"); got != "neutral" {
		t.Fatalf("Remap(unknown) = %q, want neutral", got)
	}
	if got := Remap("joy"); got != "joy" {
		t.Fatalf("Remap(joy) = %q, want joy (unchanged)", got)
	}
}
