package goLedger

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	internalaudit "github.com/MrEthical07/goLedger/internal/audit"
	"github.com/MrEthical07/goLedger/internal/inflight"
	"github.com/MrEthical07/goLedger/session"
	"github.com/MrEthical07/goLedger/transport"
)

// Builder defines a public type used by goLedger APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient *http.Client
	store      session.Store
	redis      *redis.Client
	logger     zerolog.Logger
	loggerSet  bool
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStore overrides the session store selected by Storage.Backend.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	b.loggerSet = true
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build is single-use: a second call on the same Builder returns an error.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- SESSION STORE --------
	store := b.store
	if store == nil {
		var err error
		store, err = newStore(cfg, b.redis)
		if err != nil {
			return nil, err
		}
	}

	logger := b.logger
	if !b.loggerSet {
		logger = zerolog.Nop()
	}

	engine := &Engine{
		config:   cfg,
		store:    store,
		logger:   logger,
		guard:    inflight.New(),
		dashKick: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:      cfg.Audit.Enabled,
		BufferSize:   cfg.Audit.BufferSize,
		DropIfFull:   cfg.Audit.DropIfFull,
		FailuresOnly: cfg.Audit.FailuresOnly,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	client := b.httpClient
	if client == nil {
		client = &http.Client{Timeout: cfg.API.Timeout}
	}

	pipeline, err := transport.New(transport.Config{
		BaseURL:    cfg.API.BaseURL,
		UserAgent:  cfg.API.UserAgent,
		CookieName: cfg.Session.CookieName,
	}, client, store, logger, transport.Hooks{
		OnRequest: func() {
			engine.metricInc(MetricRequestIssued)
		},
		OnUnauthorized: func() {
			engine.metricInc(MetricUnauthorizedResponse)
		},
		OnTransportError: func() {
			engine.metricInc(MetricTransportError)
		},
		OnSessionCleared: func() {
			engine.metricInc(MetricSessionCleared)
			engine.emitAudit(context.Background(), auditEventSessionCleared, true, "", nil, nil)
		},
		ObserveLatency: func(d time.Duration) {
			engine.metrics.Observe(MetricRequestLatency, d)
		},
	})
	if err != nil {
		return nil, err
	}
	engine.pipeline = pipeline

	b.built = true

	return engine, nil
}

func newStore(cfg Config, client *redis.Client) (session.Store, error) {
	switch cfg.Storage.Backend {
	case StorageRedis:
		if client == nil {
			return nil, errors.New("redis backend requires redis client")
		}
		return session.NewRedisStore(client, cfg.Storage.RedisPrefix), nil
	case StorageMemory:
		return session.NewMemStore(), nil
	case StorageFile:
		path := cfg.Storage.Path
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "goledger", "session.json")
		}
		return session.NewFileStore(path), nil
	default:
		return nil, errors.New("unknown storage backend")
	}
}
