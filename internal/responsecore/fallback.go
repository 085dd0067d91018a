package responsecore

// fallbackLibrary holds the closed set of scripted, emotion-specific
// therapeutic responses (spec.md §4.3/§6). Each entry is multi-sentence,
// ends in a single open question, and is written to score well on the
// quality metric in quality.go -- most entries contain words from
// empathyWords, professionalWords, and therapeuticWords, though not every
// entry draws on all three sets.
var fallbackLibrary = map[string]string{
	"anxiety": "It sounds like that worry has been sitting with you, and I understand how exhausting that can feel. " +
		"This is a safe space to slow down and name what's underneath it. What feels most difficult about it right now?",
	"nervousness": "I hear how on-edge you are about this, and that's a valid thing to feel. " +
		"Let's explore what's driving it together, instead of carrying it alone. What part of it worries you the most?",
	"depression": "Thank you for sharing something this heavy -- I understand how much it can take just to say it out loud. " +
		"Your feelings matter, and we can work through this together at whatever pace feels safe. What has today been like for you?",
	"sadness": "I can hear the sadness in what you're describing, and I want you to know it's okay to feel this way. " +
		"You don't have to carry it alone; support is something we can build here together. What would help you feel a little less alone with it right now?",
	"stress": "It makes sense that you'd feel stretched thin under all of that. " +
		"Let's explore some coping strategies and take this one difficult piece at a time. What feels like the heaviest part to carry right now?",
	"anger": "I hear how frustrated and angry this has made you, and that reaction is valid given what you're describing. " +
		"It takes courage to sit with that instead of pushing it down. What would feel like support to you in this moment?",
	"fear": "That sounds frightening, and I understand why it would feel hard to shake. " +
		"You're in a safe space here, and we can look at it together rather than alone. What part of it feels the most important to talk through?",
	"joy": "I'm glad to hear something good is part of your experience right now -- that matters. " +
		"It's worth taking a moment to notice what helped create this feeling. What do you think made today feel this way?",
	"admiration": "It sounds like this really mattered to you, and I appreciate you sharing that experience. " +
		"Noticing what we value is its own kind of important work. What about it stood out the most?",
	"general": "Thank you for telling me about this -- I want to understand what you're experiencing. " +
		"This is a space where your feelings are valid and we can work through things together. What feels most important to talk about right now?",
}

// SelectFallback returns the scripted response for the resolved fallback
// key, and that key itself ("general" when the label maps to no entry).
// Populating the attempted model identifier is left to the caller.
func SelectFallback(emotionLabel string) (text, key string) {
	key = KeyForEmotion(emotionLabel)
	text, ok := fallbackLibrary[key]
	if !ok {
		key = "general"
		text = fallbackLibrary["general"]
	}
	return text, key
}
