package responsecore

import "strings"

// GeneratePattern implements the Response Worker's lightweight pattern
// backend (spec.md §4.3): no model weights, just a selection from the
// closed fallback library with light personalization, and it always
// reports source=fallback.
func GeneratePattern(userText, emotionLabel string) (text, key string) {
	text, key = SelectFallback(emotionLabel)
	return personalize(text, userText), key
}

// personalize substitutes a detected subject phrase ("my exam") for the
// first "this" in the template, per spec.md §4.3. Detection is deliberately
// simple: the first "my <word>" phrase in the lower-cased utterance, or,
// when there is none, the first "about <word>" phrase. The template is
// returned unchanged when no phrase is found or it contains no "this".
func personalize(template, userText string) string {
	topic := detectTopic(userText)
	if topic == "" {
		return template
	}
	if strings.Contains(template, "this") {
		return strings.Replace(template, "this", topic, 1)
	}
	return template
}

func detectTopic(userText string) string {
	lower := strings.ToLower(userText)
	for _, marker := range []string{"my ", "about "} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			rest := strings.Fields(lower[idx+len(marker):])
			if len(rest) > 0 {
				return marker + strings.Trim(rest[0], ".,!?;:")
			}
		}
	}
	return ""
}
