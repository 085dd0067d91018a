package responsecore

import "strings"

// fillerPrefixes are short, content-free openings the quality gate rejects
// outright (spec.md §4.3).
var fillerPrefixes = []string{"I ", "That's ", "Very ", "Totally "}

// genericAgreementPhrases is the fixed generic-agreement blacklist
// (spec.md §4.3).
var genericAgreementPhrases = []string{
	"great way", "good point", "totally agree", "exactly", "absolutely",
	"same here", "me too", "i know right",
}

// gateEmpathyWords is the quality gate's required-keyword set (spec.md
// §4.3). Distinct from -- though overlapping -- the scoring word set in
// quality.go's empathyWords; the spec enumerates them separately and
// gateEmpathyWords additionally includes "sorry" and "help".
var gateEmpathyWords = []string{
	"feel", "understand", "hear", "sorry", "listen", "support", "help",
	"valid", "difficult", "care", "acknowledge", "brave", "courage",
}

// RejectReason names why the quality gate rejected a candidate, or "" if it
// passed. Reasons double as the Prometheus label value for
// observability.Metrics.ObserveQualityGateReject.
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonTooShort        RejectReason = "too_short"
	ReasonFillerOpening   RejectReason = "filler_opening"
	ReasonGenericAgree    RejectReason = "generic_agreement"
	ReasonNoEmpathyWord   RejectReason = "no_empathy_word"
)

// QualityGate evaluates candidate per spec.md §4.3's rejection rules. It is
// pure and deterministic: running it twice on the same candidate returns
// the same verdict (spec.md §8).
func QualityGate(candidate string) RejectReason {
	trimmed := strings.TrimSpace(candidate)
	if len(trimmed) < 20 {
		return ReasonTooShort
	}

	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return ReasonFillerOpening
		}
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range genericAgreementPhrases {
		if strings.Contains(lower, phrase) {
			return ReasonGenericAgree
		}
	}

	if !containsAny(lower, gateEmpathyWords) {
		return ReasonNoEmpathyWord
	}

	return ReasonNone
}

// Passes reports whether candidate clears every quality gate rule.
func Passes(candidate string) bool {
	return QualityGate(candidate) == ReasonNone
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
