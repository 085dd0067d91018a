package emotion

import "testing"

func TestSalientTokensDropsStopwordsAndPunctuation(t *testing.T) {
	got := SalientTokens([]string{"I am, so worried about the exam! The exam is tomorrow."})
	for _, tok := range got {
		if stopwords[tok] {
			t.Fatalf("stopword %q leaked into result %v", tok, got)
		}
		for _, r := range tok {
			if r < 'a' || r > 'z' {
				if r < '0' || r > '9' {
					t.Fatalf("token %q retained non-alphanumeric rune %q", tok, r)
				}
			}
		}
	}
}

func TestSalientTokensRanksByFrequency(t *testing.T) {
	got := SalientTokens([]string{"exam exam exam worried worried calm"})
	if len(got) == 0 || got[0] != "exam" {
		t.Fatalf("got[0] = %v, want exam as most frequent", got)
	}
}

func TestSalientTokensDedupesAcrossTurns(t *testing.T) {
	got := SalientTokens([]string{"exam tomorrow", "exam tomorrow again"})
	seen := make(map[string]int)
	for _, tok := range got {
		seen[tok]++
	}
	for tok, n := range seen {
		if n > 1 {
			t.Fatalf("token %q appeared %d times, want deduped", tok, n)
		}
	}
}

func TestSalientTokensCapsAtMax(t *testing.T) {
	turns := []string{"alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"}
	got := SalientTokens(turns)
	if len(got) > MaxSalientTokens {
		t.Fatalf("len(got) = %d, want <= %d", len(got), MaxSalientTokens)
	}
}

func TestSalientTokensEmptyInput(t *testing.T) {
	got := SalientTokens(nil)
	if len(got) != 0 {
		t.Fatalf("got = %v, want empty", got)
	}
}
