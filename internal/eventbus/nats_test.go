package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gmassist/api/internal/models"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages   []published
	publishErr error
	status     nats.Status
	closed     bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.messages = append(f.messages, published{subject: subject, data: data})
	return nil
}

func (f *fakeConn) Status() nats.Status { return f.status }

func (f *fakeConn) Close() { f.closed = true }

func TestPublisher_Subject(t *testing.T) {
	p := newPublisher(&fakeConn{}, "gm.generation", zap.NewNop())

	assert.Equal(t, "gm.generation.completed", p.Subject(models.OutcomeSuccess))
	assert.Equal(t, "gm.generation.failed", p.Subject(models.OutcomeFailed))
	assert.Equal(t, "gm.generation.rejected", p.Subject(models.OutcomeWarning))
}

func TestPublisher_PublishGeneration(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "gm.generation", zap.NewNop())

	event := models.GenerationEvent{
		RequestID:   "req-1",
		ContentType: "Quest",
		Model:       "mistralai/Mistral-7B-Instruct-v0.2",
		Provider:    "huggingface",
		Outcome:     models.OutcomeSuccess,
		LatencyMs:   812,
		OccurredAt:  time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishGeneration(context.Background(), event))
	require.Len(t, fc.messages, 1)
	assert.Equal(t, "gm.generation.completed", fc.messages[0].subject)

	var decoded models.GenerationEvent
	require.NoError(t, json.Unmarshal(fc.messages[0].data, &decoded))
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
	decoded.OccurredAt = event.OccurredAt
	assert.Equal(t, event, decoded)
}

func TestPublisher_PublishError(t *testing.T) {
	fc := &fakeConn{publishErr: nats.ErrConnectionClosed}
	p := newPublisher(fc, "gm.generation", zap.NewNop())

	err := p.PublishGeneration(context.Background(), models.GenerationEvent{Outcome: models.OutcomeFailed})
	require.Error(t, err)
	assert.True(t, errors.Is(err, nats.ErrConnectionClosed))
	assert.Contains(t, err.Error(), "gm.generation.failed")
}

func TestPublisher_CancelledContext(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "gm.generation", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.PublishGeneration(ctx, models.GenerationEvent{}), context.Canceled)
	assert.Empty(t, fc.messages)
}

func TestPublisher_HealthyAndClose(t *testing.T) {
	fc := &fakeConn{status: nats.CONNECTED}
	p := newPublisher(fc, "gm.generation", zap.NewNop())
	assert.NoError(t, p.Healthy())

	fc.status = nats.RECONNECTING
	assert.Error(t, p.Healthy())

	p.Close()
	assert.True(t, fc.closed)
}
