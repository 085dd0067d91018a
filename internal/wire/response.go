package wire

// ResponseRequest is the response worker's single-line stdin request
// (spec.md §6).
type ResponseRequest struct {
	UserInput string   `json:"user_input"`
	Emotion   string   `json:"emotion"`
	History   []string `json:"history"`
}

// ResponseSource identifies which path produced a reply.
type ResponseSource string

const (
	SourceModel    ResponseSource = "model"
	SourceFallback ResponseSource = "fallback"
)

// QualityIndicators holds the three scored quality metrics (spec.md §4.3).
type QualityIndicators struct {
	EmpathyScore      float64 `json:"empathy_score"`
	Professionalism   float64 `json:"professionalism"`
	TherapeuticValue  float64 `json:"therapeutic_value"`
}

// ResponseReply is the response worker's single-line stdout reply.
type ResponseReply struct {
	Response          string            `json:"response"`
	Confidence        float64           `json:"confidence"`
	Emotion           string            `json:"emotion"`
	Source            ResponseSource    `json:"source"`
	QualityIndicators QualityIndicators `json:"quality_indicators"`
	ModelInfo         map[string]any    `json:"model_info,omitempty"`
}
