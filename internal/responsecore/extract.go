package responsecore

import "strings"

// roleTags are the markers the extraction rule splits on (spec.md §4.3).
var roleTags = []string{"User:", "Assistant:", "Therapist:"}

// ExtractResponse implements spec.md §4.3's response extraction: strip the
// echoed prompt, split at role tags and keep only the assistant's first
// turn, then truncate at the first double-newline.
func ExtractResponse(raw, prompt string) string {
	text := raw
	if prompt != "" && strings.HasPrefix(text, prompt) {
		text = text[len(prompt):]
	}

	// The model's own turn may itself open with a role tag ("Therapist:");
	// strip one leading occurrence before hunting for the *next* speaker
	// change, which marks the end of this turn.
	text = strings.TrimLeft(text, " \n")
	for _, tag := range roleTags {
		if strings.HasPrefix(text, tag) {
			text = strings.TrimSpace(text[len(tag):])
			break
		}
	}

	cut := len(text)
	for _, tag := range roleTags {
		if idx := strings.Index(text, tag); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	text = text[:cut]

	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}
