package models

import "time"

// GenerationEvent is published after each generation attempt.
// It carries no theme and no generated text.
type GenerationEvent struct {
	RequestID   string    `json:"request_id,omitempty"`
	ContentType string    `json:"content_type"`
	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
	Outcome     Outcome   `json:"outcome"`
	LatencyMs   int64     `json:"latency_ms"`
	Error       string    `json:"error,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
