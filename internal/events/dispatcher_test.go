package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerd/pkg/domain"
	"ledgerd/pkg/requestcontext"
)

type captureSink struct {
	mu      sync.Mutex
	batches [][]Event
	err     error
}

func (s *captureSink) Publish(_ context.Context, batch []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]Event(nil), batch...))
	return s.err
}

func (s *captureSink) Close() error { return nil }

func (s *captureSink) events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}

type countingRecorder struct {
	mu        sync.Mutex
	published int
	dropped   map[string]int
}

func (r *countingRecorder) IncrementEventsPublished(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published += n
}

func (r *countingRecorder) IncrementEventsDropped(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dropped == nil {
		r.dropped = map[string]int{}
	}
	r.dropped[reason]++
}

func (r *countingRecorder) snapshot() (int, map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int{}
	for k, v := range r.dropped {
		out[k] = v
	}
	return r.published, out
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &captureSink{}
	rec := &countingRecorder{}
	d := NewDispatcher(sink, WithRecorder(rec), WithBatchSize(2))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	for i := range 5 {
		d.Publish(ctx, New(TypeMinted, domain.Address{byte(i)}))
	}

	require.Eventually(t, func() bool { return len(sink.events()) == 5 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	got := sink.events()
	for i, e := range got {
		assert.Equal(t, domain.Address{byte(i)}, e.Caller)
	}
	published, _ := rec.snapshot()
	assert.Equal(t, 5, published)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &captureSink{}
	rec := &countingRecorder{}
	d := NewDispatcher(sink, WithRecorder(rec), WithBuffer(1))

	d.Publish(context.Background(), New(TypeMinted, domain.Address{1}))
	d.Publish(context.Background(), New(TypeMinted, domain.Address{2}))

	_, dropped := rec.snapshot()
	assert.Equal(t, 1, dropped["buffer_full"])
}

func TestDispatcher_FlushesOnShutdown(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink)

	d.Publish(context.Background(), New(TypeBurned, domain.Address{1}))
	d.Publish(context.Background(), New(TypeBurned, domain.Address{2}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(ctx)

	assert.Len(t, sink.events(), 2)
}

func TestDispatcher_SinkErrorCountsDrops(t *testing.T) {
	sink := &captureSink{err: errors.New("broker down")}
	rec := &countingRecorder{}
	d := NewDispatcher(sink, WithRecorder(rec))

	d.Publish(context.Background(), New(TypeTransferred, domain.Address{1}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(ctx)

	published, dropped := rec.snapshot()
	assert.Equal(t, 0, published)
	assert.Equal(t, 1, dropped["sink_error"])
}

func TestDispatcher_StampsRequestID(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink)

	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	d.Publish(ctx, New(TypeMinted, domain.Address{1}))
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(cancelled)

	require.Len(t, sink.events(), 1)
	assert.Equal(t, "req-123", sink.events()[0].RequestID)
}

func TestEvent_KeyAndEncode(t *testing.T) {
	from := domain.Address{0xaa}
	to := domain.Address{0xbb}
	e := New(TypeTransferred, from).WithFrom(from).WithTo(to).WithAmount(uint256.NewInt(3400))

	assert.Equal(t, to.Bytes(), e.Key())
	assert.Equal(t, from.Bytes(), New(TypeBurned, to).WithFrom(from).Key())
	assert.Equal(t, to.Bytes(), New(TypeSystemAccountAdded, from).WithAddress(to).Key())

	raw, err := e.Encode()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "transferred", decoded["type"])
	assert.Equal(t, "3400", decoded["amount"])
	assert.NotContains(t, decoded, "address")
}
