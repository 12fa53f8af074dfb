package outcomenotifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/observability/notify"
)

type recordingSink struct {
	mu       sync.Mutex
	payloads []notify.RenewalOutcomePayload
	err      error
}

func (s *recordingSink) SendRenewalOutcome(_ context.Context, payload notify.RenewalOutcomePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return s.err
}

func (s *recordingSink) received() []notify.RenewalOutcomePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.RenewalOutcomePayload(nil), s.payloads...)
}

func testPayload() notify.RenewalOutcomePayload {
	return notify.RenewalOutcomePayload{
		RunID:           "run-1",
		Domain:          "example.com",
		StableReference: "cert-123",
		Outcome:         model.RenewalOutcomeSuccess,
		OccurredAt:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(sinks ...SinkRegistration) *Service {
	return NewService(Options{
		Logger: slog.New(slog.DiscardHandler),
		Sinks:  sinks,
	})
}

func TestNotifyFansOutToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	svc := newTestService(
		SinkRegistration{Name: "first", Sink: first},
		SinkRegistration{Name: "second", Sink: second},
	)

	svc.Notify(context.Background(), testPayload())

	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 1)
	assert.Equal(t, "run-1", first.received()[0].RunID)
}

func TestNotifySwallowsSinkFailures(t *testing.T) {
	failing := &recordingSink{err: errors.New("publish refused")}
	healthy := &recordingSink{}
	svc := newTestService(
		SinkRegistration{Name: "failing", Sink: failing},
		SinkRegistration{Name: "healthy", Sink: healthy},
	)

	// Must not panic or propagate; the healthy sink still delivers.
	svc.Notify(context.Background(), testPayload())
	assert.Len(t, healthy.received(), 1)
}

func TestNotifyStampsOccurredAt(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestService(SinkRegistration{Name: "sink", Sink: sink})

	payload := testPayload()
	payload.OccurredAt = time.Time{}
	svc.Notify(context.Background(), payload)

	got := sink.received()
	assert.Len(t, got, 1)
	assert.False(t, got[0].OccurredAt.IsZero())
}

func TestNotifyWithoutSinksIsNoop(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.Enabled())
	svc.Notify(context.Background(), testPayload())
}

func TestNewServiceSkipsNilSinks(t *testing.T) {
	svc := newTestService(
		SinkRegistration{Name: "nil", Sink: nil},
		SinkRegistration{Name: "real", Sink: &recordingSink{}},
	)
	assert.True(t, svc.Enabled())
	assert.Len(t, svc.sinks, 1)
}
