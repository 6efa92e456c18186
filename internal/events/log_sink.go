package events

import (
	"context"
	"log/slog"
)

// LogSink writes each event as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, batch []Event) error {
	for _, e := range batch {
		args := []any{
			"event", string(e.Type),
			"log_type", "ledger_event",
			"event_id", e.ID.String(),
			"caller", e.Caller.Hex(),
		}
		if e.From != nil {
			args = append(args, "from", e.From.Hex())
		}
		if e.To != nil {
			args = append(args, "to", e.To.Hex())
		}
		if e.Address != nil {
			args = append(args, "address", e.Address.Hex())
		}
		if e.Amount != "" {
			args = append(args, "amount", e.Amount)
		}
		if e.Validator != "" {
			args = append(args, "validator", e.Validator)
		}
		if e.RequestID != "" {
			args = append(args, "request_id", e.RequestID)
		}
		s.logger.InfoContext(ctx, string(e.Type), args...)
	}
	return nil
}

func (s *LogSink) Close() error { return nil }

// Discard drops every event. It backs LEDGER_EVENT_SINK=none.
type Discard struct{}

func (Discard) Publish(context.Context, []Event) error { return nil }
func (Discard) Close() error                           { return nil }
