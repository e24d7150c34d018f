// Package generator composes the content router and the inference gateway
// into the single submit-to-result pipeline.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/inference"
	"github.com/gmassist/api/internal/models"
	"github.com/gmassist/api/internal/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	// ErrEmptyTheme is returned before any outbound call when the theme is blank
	ErrEmptyTheme = errors.New("please enter a theme or keyword")
	// ErrInvalidSettings wraps slider values outside their bounds
	ErrInvalidSettings = errors.New("invalid generator settings")
)

const unknownContentType = "unknown"

// GenerationFailedError reports a failed remote call. The process stays usable.
type GenerationFailedError struct {
	Model string
	Err   error
}

func (e *GenerationFailedError) Error() string {
	return "Generation failed: " + e.Err.Error()
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}

// EventPublisher receives a notification per generation attempt
type EventPublisher interface {
	PublishGeneration(ctx context.Context, event models.GenerationEvent) error
}

// Recorder receives generation metrics
type Recorder interface {
	ObserveGeneration(contentType, tier, outcome, model string, elapsed time.Duration)
}

// Service runs one generation per call
type Service struct {
	router    *content.Router
	gateway   inference.Gateway
	recorder  Recorder
	publisher EventPublisher
	logger    *zap.Logger
}

// NewService wires the pipeline. recorder and publisher may be nil.
func NewService(router *content.Router, gateway inference.Gateway, recorder Recorder, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		router:    router,
		gateway:   gateway,
		recorder:  recorder,
		publisher: publisher,
		logger:    logger,
	}
}

// Router returns the content router used by the service
func (s *Service) Router() *content.Router {
	return s.router
}

// Provider names the inference backend
func (s *Service) Provider() string {
	return s.gateway.Name()
}

// Generate validates req, resolves its route and makes exactly one gateway call
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	ctx, span := otel.Tracer("github.com/gmassist/api/internal/generator").Start(ctx, "generator.generate")
	defer span.End()
	span.SetAttributes(attribute.String("content_type", req.ContentType))

	if strings.TrimSpace(req.Theme) == "" {
		s.finish(ctx, req, "", "", models.OutcomeWarning, 0, ErrEmptyTheme)
		return nil, ErrEmptyTheme
	}

	values := settings.Values{Temperature: req.Temperature, MaxTokens: req.MaxTokens}
	if err := values.Validate(); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		s.finish(ctx, req, "", "", models.OutcomeWarning, 0, err)
		return nil, err
	}

	contentType, err := content.Parse(req.ContentType)
	if err != nil {
		s.finish(ctx, req, "", "", models.OutcomeWarning, 0, err)
		return nil, err
	}

	route, err := s.router.Resolve(contentType, req.Theme)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("model", route.Model), attribute.String("tier", string(route.Tier)))

	start := time.Now()
	resp, err := s.gateway.Generate(ctx, inference.Request{
		Model:       route.Model,
		Prompt:      route.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		failed := &GenerationFailedError{Model: route.Model, Err: err}
		s.finish(ctx, req, route.Tier, route.Model, models.OutcomeFailed, elapsed, failed)
		return nil, failed
	}

	model := resp.Model
	if model == "" {
		model = route.Model
	}

	s.finish(ctx, req, route.Tier, model, models.OutcomeSuccess, elapsed, nil)

	return &models.GenerationResult{
		RequestID:      req.RequestID,
		ContentType:    string(route.Type),
		Text:           resp.Text,
		SourceModel:    model,
		ModelShortName: inference.ShortModelName(model),
		LatencyMs:      elapsed.Milliseconds(),
	}, nil
}

// finish logs, records and publishes the outcome of one attempt
func (s *Service) finish(ctx context.Context, req models.GenerationRequest, tier content.Tier, model string, outcome models.Outcome, elapsed time.Duration, genErr error) {
	fields := []zap.Field{
		zap.String("request_id", req.RequestID),
		zap.String("content_type", req.ContentType),
		zap.String("theme_preview", preview(req.Theme, 20)),
		zap.String("outcome", string(outcome)),
	}
	if model != "" {
		fields = append(fields, zap.String("model", model), zap.Int64("latency_ms", elapsed.Milliseconds()))
	}

	switch outcome {
	case models.OutcomeSuccess:
		s.logger.Info("generation completed", fields...)
	case models.OutcomeFailed:
		s.logger.Error("generation failed", append(fields, zap.Error(genErr))...)
	default:
		s.logger.Warn("generation rejected", append(fields, zap.Error(genErr))...)
	}

	if s.recorder != nil {
		s.recorder.ObserveGeneration(contentTypeLabel(req.ContentType), string(tier), string(outcome), model, elapsed)
	}

	if s.publisher == nil {
		return
	}

	event := models.GenerationEvent{
		RequestID:   req.RequestID,
		ContentType: req.ContentType,
		Model:       model,
		Provider:    s.gateway.Name(),
		Outcome:     outcome,
		LatencyMs:   elapsed.Milliseconds(),
		OccurredAt:  time.Now().UTC(),
	}
	if genErr != nil {
		event.Error = genErr.Error()
	}
	if err := s.publisher.PublishGeneration(ctx, event); err != nil {
		s.logger.Warn("failed to publish generation event", zap.Error(err))
	}
}

// contentTypeLabel keeps metric label values to the known types
func contentTypeLabel(s string) string {
	t, err := content.Parse(s)
	if err != nil {
		return unknownContentType
	}
	return string(t)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
