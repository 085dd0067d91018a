package responsecore

import "strings"

// framingPrefixes is the fixed system-prefix table selecting emotion-
// specific therapeutic framing (spec.md §4.3). "anxiety" and "nervousness"
// intentionally share one framing, per the spec's own grouping
// ("anxiety/nervousness, depression, sadness, stress, anger, fear, joy,
// admiration, general").
var framingPrefixes = map[string]string{
	"anxiety":     "You are a calm, grounded therapist helping someone through anxious, worried thoughts. Validate the feeling before offering perspective.",
	"nervousness": "You are a calm, grounded therapist helping someone through anxious, worried thoughts. Validate the feeling before offering perspective.",
	"depression":  "You are a patient, warm therapist speaking with someone experiencing low mood or depression. Avoid toxic positivity; sit with the feeling.",
	"sadness":     "You are an empathetic therapist speaking with someone who is sad. Acknowledge the loss or disappointment before anything else.",
	"stress":      "You are a practical, steady therapist helping someone who feels overwhelmed or stressed. Help them name the heaviest piece first.",
	"anger":       "You are a measured therapist speaking with someone who is angry or frustrated. Validate the reaction without escalating it.",
	"fear":        "You are a reassuring therapist speaking with someone who is afraid. Offer safety and grounding before problem-solving.",
	"joy":         "You are an engaged therapist speaking with someone experiencing joy or excitement. Reflect it back and help them notice what helped.",
	"admiration":  "You are an attentive therapist speaking with someone describing something they admire or value. Explore what it means to them.",
	"general":     "You are a warm, professional therapist having an ongoing supportive conversation.",
}

// MaxPromptTokens is the default token budget (spec.md §4.3: "≤ ~400 input
// tokens"); MemoryConstrainedMaxPromptTokens is the reduced budget for
// constrained deployments ("~250").
const (
	MaxPromptTokens                  = 400
	MemoryConstrainedMaxPromptTokens = 250
)

// AssemblePrompt builds the full generation prompt: framing prefix, then
// history lines (already bounded to K pairs/characters by the caller), then
// the current user text, then a role tag indicating the assistant is to
// speak (spec.md §4.3). Oldest history lines are dropped, by a simple
// whitespace-token count, until the prompt fits maxTokens. Only history is
// dropped: the prefix and the user text are never cut, so a prompt whose
// prefix and user text alone exceed maxTokens is returned over the limit.
func AssemblePrompt(userText, emotionLabel string, historyLines []string, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = MaxPromptTokens
	}
	key := KeyForEmotion(emotionLabel)
	prefix, ok := framingPrefixes[key]
	if !ok {
		prefix = framingPrefixes["general"]
	}

	lines := make([]string, len(historyLines))
	copy(lines, historyLines)

	build := func(hist []string) string {
		var b strings.Builder
		b.WriteString(prefix)
		b.WriteString("\n\n")
		for _, h := range hist {
			b.WriteString(h)
			b.WriteString("\n")
		}
		b.WriteString("User: ")
		b.WriteString(userText)
		b.WriteString("\nTherapist:")
		return b.String()
	}

	prompt := build(lines)
	for countTokens(prompt) > maxTokens && len(lines) > 0 {
		lines = lines[1:]
		prompt = build(lines)
	}
	return prompt
}

func countTokens(s string) int {
	return len(strings.Fields(s))
}
