package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultHuggingFaceURL is the OpenAI-compatible Hugging Face inference router
const DefaultHuggingFaceURL = "https://router.huggingface.co/v1"

const tracerName = "github.com/gmassist/api/internal/inference"

// HuggingFace calls the chat completions endpoint of the Hugging Face router
type HuggingFace struct {
	baseURL string
	token   string
	client  *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// NewHuggingFace creates a gateway authenticated with token.
// The HTTP client keeps the transport defaults.
func NewHuggingFace(baseURL, token string) *HuggingFace {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceURL
	}
	return &HuggingFace{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{},
	}
}

func (h *HuggingFace) Name() string {
	return string(ProviderHuggingFace)
}

// Generate sends one chat completion request and returns the first choice
func (h *HuggingFace) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inference.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("inference.provider", h.Name()),
		attribute.String("inference.model", req.Model),
		attribute.Float64("inference.temperature", req.Temperature),
		attribute.Int("inference.max_tokens", req.MaxTokens),
	)

	resp, err := h.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

func (h *HuggingFace) generate(ctx context.Context, req Request) (*Response, error) {
	reqBody := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages(),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	h.authorize(httpReq)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface request failed with status %d: %s", resp.StatusCode, providerError(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Text:  text,
		Model: req.Model,
	}, nil
}

// Check lists models on the router to verify reachability and the token
func (h *HuggingFace) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	h.authorize(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, providerError(body))
	}
	return nil
}

func (h *HuggingFace) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

func (h *HuggingFace) authorize(req *http.Request) {
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
}

// providerError extracts a readable message from an error body.
// Both {"error":"..."} and {"error":{"message":"..."}} shapes are seen in practice.
func providerError(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil && msg != "" {
			return msg
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	return text
}
