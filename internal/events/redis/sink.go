// Package redis appends ledger events to a Redis stream.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ledgerd/internal/events"
)

type Sink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// New appends to stream, trimming it to roughly maxLen entries. A zero maxLen
// disables trimming. The caller owns the client.
func New(client redis.Cmdable, stream string, maxLen int64) *Sink {
	return &Sink{client: client, stream: stream, maxLen: maxLen}
}

// Publish pipelines one XADD per event.
func (s *Sink) Publish(ctx context.Context, batch []events.Event) error {
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range batch {
			payload, err := e.Encode()
			if err != nil {
				return fmt.Errorf("encode event %s: %w", e.ID, err)
			}
			pipe.XAdd(ctx, &redis.XAddArgs{
				Stream: s.stream,
				MaxLen: s.maxLen,
				Approx: s.maxLen > 0,
				Values: map[string]any{
					"id":      e.ID.String(),
					"type":    string(e.Type),
					"payload": payload,
				},
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

func (s *Sink) Close() error { return nil }
