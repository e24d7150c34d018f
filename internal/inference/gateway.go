// Package inference issues single-turn generation calls to hosted text models.
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ProviderType names a supported inference backend
type ProviderType string

const (
	ProviderHuggingFace ProviderType = "huggingface"
	ProviderGemini      ProviderType = "gemini"
)

// SupportedProviders lists the accepted INFERENCE_PROVIDER values
var SupportedProviders = []string{string(ProviderHuggingFace), string(ProviderGemini)}

// ErrEmptyResponse is returned when the provider answers without any text choice
var ErrEmptyResponse = errors.New("no choices returned in response")

// Message is one chat message sent to the provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single generation call
type Request struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Messages returns the one-element user message list for r
func (r Request) Messages() []Message {
	return []Message{{Role: "user", Content: r.Prompt}}
}

// Response carries the generated text and the model that served it
type Response struct {
	Text  string
	Model string
}

// Gateway performs exactly one outbound call per Generate. It never retries.
type Gateway interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}

// Checker is implemented by gateways that can probe their endpoint
type Checker interface {
	Check(ctx context.Context) error
}

// ProviderConfig selects and configures a backend
type ProviderConfig struct {
	Type    ProviderType
	BaseURL string
	APIKey  string
}

// New builds the gateway for cfg.Type
func New(ctx context.Context, cfg ProviderConfig) (Gateway, error) {
	switch cfg.Type {
	case ProviderHuggingFace, "":
		return NewHuggingFace(cfg.BaseURL, cfg.APIKey), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s (supported: %s)", cfg.Type, strings.Join(SupportedProviders, ", "))
	}
}

// ShortModelName returns the part of a model id after the last slash
func ShortModelName(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		return model[i+1:]
	}
	return model
}
