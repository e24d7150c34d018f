package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gmassist/api/internal/models"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// conn is the subset of *nats.Conn used by the publisher
type conn interface {
	Publish(subject string, data []byte) error
	Status() nats.Status
	Close()
}

// Publisher sends fire-and-forget generation notifications on NATS core subjects.
// Nothing is retained by the bus.
type Publisher struct {
	nc     conn
	prefix string
	logger *zap.Logger
}

// Connect dials url and returns a publisher for subjects under prefix
func Connect(url, prefix string, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("gm-assistant"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return newPublisher(nc, prefix, logger), nil
}

func newPublisher(nc conn, prefix string, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, prefix: prefix, logger: logger}
}

// Subject returns the subject an outcome is published on
func (p *Publisher) Subject(outcome models.Outcome) string {
	switch outcome {
	case models.OutcomeSuccess:
		return p.prefix + ".completed"
	case models.OutcomeFailed:
		return p.prefix + ".failed"
	default:
		return p.prefix + ".rejected"
	}
}

// PublishGeneration emits one event for a finished generation attempt
func (p *Publisher) PublishGeneration(ctx context.Context, event models.GenerationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.Subject(event.Outcome)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Healthy reports whether the connection is currently established
func (p *Publisher) Healthy() error {
	if status := p.nc.Status(); status != nats.CONNECTED {
		return fmt.Errorf("nats connection %s", status)
	}
	return nil
}

// Close drops the connection
func (p *Publisher) Close() {
	p.nc.Close()
}
