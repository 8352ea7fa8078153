package goLedger

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by goLedger APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API       APIConfig
	Session   SessionConfig
	Storage   StorageConfig
	Voucher   VoucherConfig
	Gate      GateConfig
	Dashboard DashboardConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by goLedger APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goLedger APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// CookieName is the redundant session cookie sent beside the bearer header.
	CookieName string
	// Lifetime is the client-side session lifetime; the backend may expire the
	// token earlier.
	Lifetime time.Duration
}

// StorageBackend selects the session store wired by Build.
type StorageBackend string

const (
	// StorageFile is an exported constant or variable used by the client engine.
	StorageFile StorageBackend = "file"
	// StorageRedis is an exported constant or variable used by the client engine.
	StorageRedis StorageBackend = "redis"
	// StorageMemory is an exported constant or variable used by the client engine.
	StorageMemory StorageBackend = "memory"
)

// StorageConfig defines a public type used by goLedger APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	Backend StorageBackend
	// Path is the session file location for StorageFile. Empty means a
	// goledger/session.json file under the user config directory.
	Path        string
	RedisPrefix string
}

/*
====================================
VOUCHER CONFIG
====================================
*/

// VoucherConfig defines a public type used by goLedger APIs.
//
// VoucherConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VoucherConfig struct {
	// BalanceTolerance absorbs floating-point accumulation when comparing total
	// debits against total credits.
	BalanceTolerance float64
}

// GateConfig defines a public type used by goLedger APIs.
//
// GateConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GateConfig struct {
	// PublicRoutes are reachable without a session (login, registration).
	PublicRoutes []string
	// LandingRoute is where authenticated users are sent from public routes.
	LandingRoute string
	// LoginRoute is where unauthenticated users are sent from protected routes.
	LoginRoute string
}

// DashboardConfig defines a public type used by goLedger APIs.
//
// DashboardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DashboardConfig struct {
	RefreshInterval time.Duration
}

// AuditConfig defines a public type used by goLedger APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
	// FailuresOnly suppresses successful-operation events, keeping the trail to
	// rejections and failures.
	FailuresOnly bool
}

// MetricsConfig defines a public type used by goLedger APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration Build starts from. BaseURL must still be
// supplied before the result validates.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "goLedger",
		},
		Session: SessionConfig{
			CookieName: "SessionId",
			Lifetime:   7 * 24 * time.Hour,
		},
		Storage: StorageConfig{
			Backend:     StorageFile,
			RedisPrefix: "gl",
		},
		Voucher: VoucherConfig{
			BalanceTolerance: 0.01,
		},
		Gate: GateConfig{
			PublicRoutes: []string{"login", "register"},
			LandingRoute: "dashboard",
			LoginRoute:   "login",
		},
		Dashboard: DashboardConfig{
			RefreshInterval: 5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Gate.PublicRoutes = append([]string(nil), cfg.Gate.PublicRoutes...)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when a required field is missing or a numeric field is
// out of range. Validate does not mutate the receiver.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API.BaseURL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API.BaseURL must be an absolute URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API.Timeout must be positive")
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("Session.Lifetime must be positive")
	}
	if c.Voucher.BalanceTolerance < 0 {
		return errors.New("Voucher.BalanceTolerance must not be negative")
	}
	switch c.Storage.Backend {
	case StorageFile, StorageRedis, StorageMemory:
	default:
		return errors.New("Storage.Backend must be file, redis, or memory")
	}
	if c.Dashboard.RefreshInterval <= 0 {
		return errors.New("Dashboard.RefreshInterval must be positive")
	}
	if c.Gate.LandingRoute == "" || c.Gate.LoginRoute == "" {
		return errors.New("Gate routes must be set")
	}
	return nil
}
