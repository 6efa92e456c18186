package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ledgerd/internal/compliance"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	pkgstrings "ledgerd/pkg/platform/strings"
)

// DefaultChallenge is the digest wallets sign to prove control during
// recovery unless LEDGER_RECOVERY_CHALLENGE overrides it.
const DefaultChallenge = "0xa1de988600a42c4b4ab089b619297c17d53cffae5d5120d82d8a92d0bb3b78f2"

const devJWTSigningKey = "dev-secret-key-change-in-production"

// Server captures process level configuration.
type Server struct {
	Environment string
	Addr        string
	LogLevel    string
	LogFormat   string

	Ledger    LedgerConfig
	Store     StoreConfig
	Events    EventsConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// LedgerConfig seeds a fresh store and tunes recovery.
type LedgerConfig struct {
	Owner              domain.Address
	SystemAccounts     []domain.Address
	Validator          compliance.Kind
	Challenge          domain.Hash
	RecoveryCompliance recovery.Policy
}

type StoreConfig struct {
	Backend  string // memory, postgres, bolt
	DSN      string
	Driver   string // pgx or postgres
	BoltPath string
}

type EventsConfig struct {
	Sink       string // log, kafka, redis, none
	Buffer     int
	BatchSize  int
	Brokers    []string
	Topic      string
	Stream     string
	StreamMax  int64
	Partitions int32
}

// RedisConfig configures the shared go-redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// FromEnv builds a Server config from LEDGER_* environment variables so main
// stays lean. Named deployments differ only by environment.
func FromEnv() (Server, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Server, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	var errs []error

	cfg := Server{
		Environment: env("LEDGER_ENV", "development"),
		Addr:        env("LEDGER_ADDR", ":8080"),
		LogLevel:    env("LEDGER_LOG_LEVEL", "info"),
		LogFormat:   env("LEDGER_LOG_FORMAT", "json"),
		Store: StoreConfig{
			Backend:  env("LEDGER_STORE", "memory"),
			DSN:      env("LEDGER_DATABASE_URL", ""),
			Driver:   env("LEDGER_DATABASE_DRIVER", "pgx"),
			BoltPath: env("LEDGER_BOLT_PATH", "ledger.db"),
		},
		Events: EventsConfig{
			Sink:    env("LEDGER_EVENT_SINK", "log"),
			Brokers: pkgstrings.SplitList(env("LEDGER_KAFKA_BROKERS", "")),
			Topic:   env("LEDGER_KAFKA_TOPIC", "ledger.events"),
			Stream:  env("LEDGER_REDIS_STREAM", "ledger:events"),
		},
		Redis: RedisConfig{
			URL: env("LEDGER_REDIS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSigningKey: env("LEDGER_JWT_SIGNING_KEY", ""),
			Issuer:        env("LEDGER_JWT_ISSUER", "ledgerd"),
			Audience:      env("LEDGER_JWT_AUDIENCE", "ledgerd"),
		},
	}

	if cfg.Auth.JWTSigningKey == "" && cfg.Environment == "development" {
		// Use a default for development - must be overridden elsewhere
		cfg.Auth.JWTSigningKey = devJWTSigningKey
	}

	intVar := func(key string, def int) int {
		raw := env(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		raw := env(key, "")
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return v
	}

	cfg.Events.Buffer = intVar("LEDGER_EVENT_BUFFER", 1024)
	cfg.Events.BatchSize = intVar("LEDGER_EVENT_BATCH", 64)
	cfg.Events.StreamMax = int64(intVar("LEDGER_REDIS_STREAM_MAXLEN", 100000))
	cfg.Events.Partitions = int32(intVar("LEDGER_KAFKA_PARTITIONS", 3))
	cfg.Redis.PoolSize = intVar("LEDGER_REDIS_POOL_SIZE", 10)
	cfg.Redis.MinIdleConns = intVar("LEDGER_REDIS_MIN_IDLE", 2)
	cfg.Redis.DialTimeout = durationVar("LEDGER_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.Redis.ReadTimeout = durationVar("LEDGER_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.Redis.WriteTimeout = durationVar("LEDGER_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RateLimit.Burst = intVar("LEDGER_RATE_BURST", 20)

	rps, err := strconv.ParseFloat(env("LEDGER_RATE_RPS", "10"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("LEDGER_RATE_RPS: %w", err))
	}
	cfg.RateLimit.RPS = rps

	if raw := env("LEDGER_OWNER", ""); raw != "" {
		owner, err := domain.ParseNonZeroAddress(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("LEDGER_OWNER: %w", err))
		}
		cfg.Ledger.Owner = owner
	}
	for _, raw := range pkgstrings.SplitList(env("LEDGER_SYSTEM_ACCOUNTS", "")) {
		addr, err := domain.ParseNonZeroAddress(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("LEDGER_SYSTEM_ACCOUNTS: %w", err))
			continue
		}
		cfg.Ledger.SystemAccounts = append(cfg.Ledger.SystemAccounts, addr)
	}
	if cfg.Ledger.Validator, err = compliance.ParseKind(env("LEDGER_VALIDATOR", string(compliance.KindBlacklist))); err != nil {
		errs = append(errs, fmt.Errorf("LEDGER_VALIDATOR: %w", err))
	}
	if cfg.Ledger.Challenge, err = domain.ParseHash(env("LEDGER_RECOVERY_CHALLENGE", DefaultChallenge)); err != nil {
		errs = append(errs, fmt.Errorf("LEDGER_RECOVERY_CHALLENGE: %w", err))
	}
	if cfg.Ledger.RecoveryCompliance, err = recovery.ParsePolicy(env("LEDGER_RECOVERY_COMPLIANCE", string(recovery.PolicyNone))); err != nil {
		errs = append(errs, fmt.Errorf("LEDGER_RECOVERY_COMPLIANCE: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return Server{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports combinations that cannot start.
func (c Server) Validate() error {
	var errs []error
	if c.Ledger.Owner == domain.ZeroAddress {
		errs = append(errs, errors.New("LEDGER_OWNER is required"))
	}
	switch c.Store.Backend {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("LEDGER_DATABASE_URL is required for the postgres store"))
		}
		if c.Store.Driver != "pgx" && c.Store.Driver != "postgres" {
			errs = append(errs, fmt.Errorf("LEDGER_DATABASE_DRIVER %q must be pgx or postgres", c.Store.Driver))
		}
	case "bolt":
		if c.Store.BoltPath == "" {
			errs = append(errs, errors.New("LEDGER_BOLT_PATH is required for the bolt store"))
		}
	default:
		errs = append(errs, fmt.Errorf("LEDGER_STORE %q must be memory, postgres or bolt", c.Store.Backend))
	}
	switch c.Events.Sink {
	case "log", "none":
	case "kafka":
		if len(c.Events.Brokers) == 0 {
			errs = append(errs, errors.New("LEDGER_KAFKA_BROKERS is required for the kafka sink"))
		}
	case "redis":
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("LEDGER_REDIS_URL is required for the redis sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("LEDGER_EVENT_SINK %q must be log, kafka, redis or none", c.Events.Sink))
	}
	if c.Events.Buffer <= 0 || c.Events.BatchSize <= 0 {
		errs = append(errs, errors.New("event buffer and batch size must be positive"))
	}
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("LEDGER_JWT_SIGNING_KEY is required outside development"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}
	return errors.Join(errs...)
}
