package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
)

// Default Gemini models for the two tiers
const (
	DefaultGeminiConversationalModel = "gemini-2.5-flash"
	DefaultGeminiInstructModel       = "gemini-2.5-pro"
)

// Gemini serves generations through the Google Generative AI SDK
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a client authenticated with apiKey
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string {
	return string(ProviderGemini)
}

// Generate sends the prompt as a single user turn
func (g *Gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inference.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("inference.provider", g.Name()),
		attribute.String("inference.model", req.Model),
	)

	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := getText(resp)
	if text == "" {
		span.SetStatus(codes.Error, ErrEmptyResponse.Error())
		return nil, ErrEmptyResponse
	}

	return &Response{Text: text, Model: req.Model}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func getText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
