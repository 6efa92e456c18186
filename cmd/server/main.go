package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"ledgerd/internal/controller"
	"ledgerd/internal/controller/handler"
	"ledgerd/internal/events"
	jwttoken "ledgerd/internal/jwt_token"
	"ledgerd/internal/platform/config"
	"ledgerd/internal/platform/httpserver"
	"ledgerd/internal/platform/logger"
	"ledgerd/internal/platform/metrics"
	"ledgerd/internal/platform/middleware"
)

const shutdownGrace = 10 * time.Second

// main wires configuration, storage, the event pipeline and the HTTP
// surface, then runs until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ledgerd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}

	sink, releaseClients, err := openSink(ctx, cfg, log)
	if err != nil {
		_ = store.Close()
		return err
	}
	defer releaseClients()

	dispatcher := events.NewDispatcher(sink,
		events.WithLogger(log),
		events.WithRecorder(m),
		events.WithBuffer(cfg.Events.Buffer),
		events.WithBatchSize(cfg.Events.BatchSize),
	)

	svc, err := controller.New(ctx, store, controller.Config{
		Owner:          cfg.Ledger.Owner,
		SystemAccounts: cfg.Ledger.SystemAccounts,
		Validator:      cfg.Ledger.Validator,
		Challenge:      cfg.Ledger.Challenge,
		RecoveryPolicy: cfg.Ledger.RecoveryCompliance,
	},
		controller.WithLogger(log),
		controller.WithMetrics(m),
		controller.WithPublisher(dispatcher),
	)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("controller: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	h := handler.New(svc, jwtService, log,
		handler.WithAuthenticatedMiddleware(middleware.RateLimit(limiter, m, log)),
	)
	srv := httpserver.New(cfg.Addr, newRouter(h, log, m, prometheus.DefaultGatherer))

	// The dispatcher outlives the server so events from requests finishing
	// during shutdown are still flushed.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := dispatcher.Run(dispatchCtx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweepLimiter(gctx, limiter)
		return nil
	})
	g.Go(func() error {
		defer stopDispatch()
		log.Info("starting ledgerd",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"store", cfg.Store.Backend,
			"event_sink", cfg.Events.Sink,
		)
		return httpserver.Run(gctx, srv, shutdownGrace)
	})

	err = g.Wait()
	if cerr := dispatcher.Close(); cerr != nil {
		log.Warn("failed to close event sink", "error", cerr)
	}
	if err != nil {
		return err
	}
	log.Info("ledgerd stopped")
	return nil
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}
