// Package controller is the single entry point to ledger state. It owns the
// ledger, access control and the active compliance validator behind one
// lock, and persists every mutation before installing it in memory.
//
// Each write runs authorization, then compliance, then plans the ledger
// change, commits it to the Store and only then applies it. A failed check or
// a failed commit leaves no trace. Events are published after the lock is
// released.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ledgerd/internal/access"
	"ledgerd/internal/compliance"
	"ledgerd/internal/events"
	"ledgerd/internal/ledger"
	"ledgerd/internal/ledger/models"
	"ledgerd/internal/platform/metrics"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
	"ledgerd/pkg/platform/sentinel"
	"ledgerd/pkg/requestcontext"
)

const tracerName = "ledgerd/controller"

// Store persists controller state. Commit must be all or nothing.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Commit(ctx context.Context, c *models.Commit) error
	Close() error
}

// Config seeds an empty store and configures recovery. Owner, SystemAccounts
// and Validator are ignored once state exists.
type Config struct {
	Owner          domain.Address
	SystemAccounts []domain.Address
	Validator      compliance.Kind
	Challenge      domain.Hash
	RecoveryPolicy recovery.Policy
}

type Service struct {
	mu        sync.RWMutex
	ledger    *ledger.Ledger
	access    *access.Control
	validator compliance.Validator
	verifier  *recovery.Verifier
	policy    recovery.Policy

	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) {}

// New loads state from store, writing the genesis commit first when the
// store is empty.
func New(ctx context.Context, store Store, cfg Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store:     store,
		verifier:  recovery.NewVerifier(cfg.Challenge),
		policy:    cfg.RecoveryPolicy,
		publisher: nopPublisher{},
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == "" {
		s.policy = recovery.PolicyNone
	}

	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		snap, err = s.bootstrap(ctx, cfg)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load ledger state: %w", err)
	default:
		if cfg.Owner != domain.ZeroAddress && cfg.Owner != snap.Owner {
			s.logger.WarnContext(ctx, "configured owner differs from persisted owner; keeping persisted",
				"configured", cfg.Owner.Hex(),
				"persisted", snap.Owner.Hex(),
			)
		}
	}

	if err := s.restore(snap); err != nil {
		return nil, fmt.Errorf("restore ledger state: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SetTotalSupply(s.ledger.TotalSupply())
	}
	s.logger.InfoContext(ctx, "ledger state loaded",
		"owner", snap.Owner.Hex(),
		"accounts", len(snap.Balances),
		"system_accounts", len(snap.SystemAccounts),
		"validator", string(s.validator.Kind()),
		"total_supply", domain.FormatAmount(snap.TotalSupply),
	)
	return s, nil
}

func (s *Service) bootstrap(ctx context.Context, cfg Config) (*models.Snapshot, error) {
	if cfg.Owner == domain.ZeroAddress {
		return nil, errors.New("owner is required to initialize an empty store")
	}
	kind := cfg.Validator
	if kind == "" {
		kind = compliance.KindBlacklist
	}
	genesis := models.Genesis(cfg.Owner, cfg.SystemAccounts, compliance.Config{Kind: kind})
	if err := s.store.Commit(ctx, genesis); err != nil {
		return nil, fmt.Errorf("write genesis: %w", err)
	}
	s.logger.InfoContext(ctx, "ledger initialized",
		"owner", cfg.Owner.Hex(),
		"system_accounts", len(cfg.SystemAccounts),
		"validator", string(kind),
	)
	snap := models.NewSnapshot()
	snap.Apply(genesis)
	return snap, nil
}

func (s *Service) restore(snap *models.Snapshot) error {
	l := ledger.New()
	if err := l.Restore(snap.Balances, snap.TotalSupply); err != nil {
		return err
	}
	ac, err := access.New(snap.Owner, snap.SystemAccounts...)
	if err != nil {
		return err
	}
	v, err := compliance.FromConfig(snap.Validator)
	if err != nil {
		return err
	}
	s.ledger, s.access, s.validator = l, ac, v
	return nil
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}

// write runs fn under the write lock.
func (s *Service) write(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// persist commits c; store failures surface as internal errors. Must be
// called with the write lock held. A write that holds the lock runs to
// completion, so caller cancellation is detached here.
func (s *Service) persist(ctx context.Context, c *models.Commit) error {
	if c.Empty() {
		return nil
	}
	if err := s.store.Commit(context.WithoutCancel(ctx), c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist ledger change")
	}
	return nil
}

func deltaCommit(d ledger.Delta) *models.Commit {
	return &models.Commit{Balances: d.Balances, TotalSupply: d.Supply}
}

// observe opens a span for op and returns a completion func that records the
// outcome on the span and in metrics.
func (s *Service) observe(ctx context.Context, op string, caller domain.Address) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "controller."+op, trace.WithAttributes(
		attribute.String("ledger.op", op),
		attribute.String("ledger.caller", caller.Hex()),
	))
	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
			s.logFailure(ctx, op, caller, err)
		}
		span.End()
		if s.metrics != nil {
			s.metrics.ObserveOperation(op, outcome, start)
		}
	}
}

func (s *Service) logFailure(ctx context.Context, op string, caller domain.Address, err error) {
	attrs := []any{
		"op", op,
		"caller", caller.Hex(),
		"code", string(dErrors.CodeOf(err)),
		"request_id", requestcontext.RequestID(ctx),
	}
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		s.logger.ErrorContext(ctx, "ledger operation failed", append(attrs, "error", err)...)
		return
	}
	s.logger.InfoContext(ctx, "ledger operation rejected", append(attrs, "error", err)...)
}

// logAudit writes one audit line per committed mutation.
func (s *Service) logAudit(ctx context.Context, event events.Type, caller domain.Address, attrs ...any) {
	args := append([]any{
		"event", string(event),
		"log_type", "audit",
		"caller", caller.Hex(),
		"request_id", requestcontext.RequestID(ctx),
	}, attrs...)
	s.logger.InfoContext(ctx, string(event), args...)
}

func (s *Service) recordSupply(supply *uint256.Int) {
	if s.metrics != nil {
		s.metrics.SetTotalSupply(supply)
	}
}
