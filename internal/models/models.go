package models

// Outcome represents how a single generation attempt ended
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeWarning Outcome = "warning"
)

// GenerationRequest is built fresh on every submit and discarded afterwards
type GenerationRequest struct {
	ContentType string  `json:"content_type"`
	Theme       string  `json:"theme"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	RequestID string `json:"-"`
}

// GenerationResult is shown once and never stored
type GenerationResult struct {
	RequestID      string `json:"request_id,omitempty"`
	ContentType    string `json:"content_type"`
	Text           string `json:"text"`
	SourceModel    string `json:"source_model"`
	ModelShortName string `json:"model_short_name"`
	LatencyMs      int64  `json:"latency_ms"`
}

// Attribution is the caption shown under generated text
func (r *GenerationResult) Attribution() string {
	return "Generated with " + r.ModelShortName
}

// ContentTypeInfo describes a dropdown entry and where it is routed
type ContentTypeInfo struct {
	Name  string `json:"name"`
	Tier  string `json:"tier"`
	Model string `json:"model"`
}
