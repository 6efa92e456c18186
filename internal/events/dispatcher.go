package events

import (
	"context"
	"log/slog"
	"time"

	"ledgerd/pkg/requestcontext"
)

const (
	defaultBuffer    = 1024
	defaultBatchSize = 64
	flushTimeout     = 5 * time.Second
)

// Recorder receives delivery counts. *metrics.Metrics satisfies it.
type Recorder interface {
	IncrementEventsPublished(n int)
	IncrementEventsDropped(reason string)
}

type nopRecorder struct{}

func (nopRecorder) IncrementEventsPublished(int)  {}
func (nopRecorder) IncrementEventsDropped(string) {}

// Dispatcher buffers events in a bounded channel and drains them into a Sink
// from one worker goroutine. Publish never blocks on sink I/O.
type Dispatcher struct {
	sink      Sink
	inbox     chan Event
	batchSize int
	logger    *slog.Logger
	recorder  Recorder
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

func WithBuffer(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.inbox = make(chan Event, n)
		}
	}
}

func WithBatchSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

func NewDispatcher(sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sink:      sink,
		inbox:     make(chan Event, defaultBuffer),
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish enqueues e, dropping it with a warning when the buffer is full.
func (d *Dispatcher) Publish(ctx context.Context, e Event) {
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case d.inbox <- e:
	default:
		d.recorder.IncrementEventsDropped("buffer_full")
		d.logger.WarnContext(ctx, "event buffer full, dropping event",
			"event_id", e.ID.String(),
			"event_type", string(e.Type),
		)
	}
}

// Run drains the buffer until ctx is cancelled, then flushes what is left.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.flush()
			return ctx.Err()
		case e := <-d.inbox:
			d.deliver(ctx, d.collect(e))
		}
	}
}

// collect gathers whatever is already queued behind first, up to batchSize.
func (d *Dispatcher) collect(first Event) []Event {
	batch := make([]Event, 0, d.batchSize)
	batch = append(batch, first)
	for len(batch) < d.batchSize {
		select {
		case e := <-d.inbox:
			batch = append(batch, e)
		default:
			return batch
		}
	}
	return batch
}

func (d *Dispatcher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case e := <-d.inbox:
			d.deliver(ctx, d.collect(e))
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, batch []Event) {
	if err := d.sink.Publish(ctx, batch); err != nil {
		for range batch {
			d.recorder.IncrementEventsDropped("sink_error")
		}
		d.logger.ErrorContext(ctx, "event sink publish failed",
			"error", err,
			"batch_size", len(batch),
		)
		return
	}
	d.recorder.IncrementEventsPublished(len(batch))
}

// Close releases the sink. Call after Run has returned.
func (d *Dispatcher) Close() error {
	return d.sink.Close()
}
