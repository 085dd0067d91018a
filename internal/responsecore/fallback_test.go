package responsecore

import "testing"

func TestKeyForEmotionAliasesPassThrough(t *testing.T) {
	for _, alias := range []string{"stress", "anxiety", "depression"} {
		if got := KeyForEmotion(alias); got != alias {
			t.Fatalf("KeyForEmotion(%q) = %q, want passthrough", alias, got)
		}
	}
}

func TestKeyForEmotionMapsCoreLabels(t *testing.T) {
	cases := map[string]string{
		"nervousness": "nervousness",
		"annoyance":   "anger",
		"grief":       "sadness",
		"excitement":  "joy",
		"admiration":  "admiration",
		"surprise":    "general",
		"":            "general",
	}
	for label, want := range cases {
		if got := KeyForEmotion(label); got != want {
			t.Fatalf("KeyForEmotion(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestSelectFallbackUnknownFallsThroughToGeneral(t *testing.T) {
	text, key := SelectFallback("surprise")
	if key != "general" {
		t.Fatalf("key = %q, want general", key)
	}
	if text != fallbackLibrary["general"] {
		t.Fatalf("expected general fallback text")
	}
}
