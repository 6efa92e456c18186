package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledgerd/internal/controller"
	"ledgerd/internal/controller/handler"
	"ledgerd/internal/events"
	"ledgerd/internal/events/kafka"
	redissink "ledgerd/internal/events/redis"
	boltstore "ledgerd/internal/ledger/store/bolt"
	"ledgerd/internal/ledger/store/memory"
	"ledgerd/internal/ledger/store/postgres"
	"ledgerd/internal/platform/config"
	"ledgerd/internal/platform/metrics"
	"ledgerd/internal/platform/middleware"
	"ledgerd/internal/platform/redis"
	dErrors "ledgerd/pkg/domain-errors"
	"ledgerd/pkg/platform/httputil"
	"ledgerd/pkg/platform/middleware/metadata"
	"ledgerd/pkg/platform/middleware/requesttime"
)

func openStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (controller.Store, error) {
	switch cfg.Backend {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		store := postgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		log.Info("using postgres store", "driver", cfg.Driver)
		return store, nil
	case "bolt":
		store, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info("using bolt store", "path", cfg.BoltPath)
		return store, nil
	default:
		log.Warn("using in-memory store; state is lost on restart")
		return memory.New(), nil
	}
}

// openSink returns the configured event sink and a func releasing clients the
// sink borrows. The sink itself is closed through the dispatcher.
func openSink(ctx context.Context, cfg config.Server, log *slog.Logger) (events.Sink, func(), error) {
	switch cfg.Events.Sink {
	case "kafka":
		sink, err := kafka.New(ctx, kafka.Config{
			Brokers:    cfg.Events.Brokers,
			Topic:      cfg.Events.Topic,
			Partitions: cfg.Events.Partitions,
			ClientID:   "ledgerd",
		})
		if err != nil {
			return nil, nil, fmt.Errorf("kafka sink: %w", err)
		}
		return sink, func() {}, nil
	case "redis":
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis sink: %w", err)
		}
		if client == nil {
			return nil, nil, fmt.Errorf("redis sink: LEDGER_REDIS_URL is not set")
		}
		return redissink.New(client, cfg.Events.Stream, cfg.Events.StreamMax), func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", "error", err)
			}
		}, nil
	case "none":
		return events.Discard{}, func() {}, nil
	default:
		return events.NewLogSink(log), func() {}, nil
	}
}

func newRouter(h *handler.Handler, log *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.AccessLog(log, m))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	h.Register(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}
