package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Admin     AdminConfig
	Checkout  CheckoutConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Stripe    StripeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Admin.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Redis.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEADINTAKE_APP_ENV" default:"dev"`
	Port         string `envconfig:"LEADINTAKE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LEADINTAKE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEADINTAKE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

func (a *AppConfig) validate() error {
	a.Env = strings.ToLower(strings.TrimSpace(a.Env))
	if a.Env == "" {
		a.Env = AppEnvDev
	}
	port, err := strconv.Atoi(strings.TrimSpace(a.Port))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", EnvPort, a.Port)
	}
	if strings.ContainsAny(a.Env, " /") {
		return fmt.Errorf("%s must be a single word, got %q", EnvAppEnv, a.Env)
	}
	return nil
}

// AdminConfig holds the shared secret guarding the admin surfaces. An empty key
// disables them.
type AdminConfig struct {
	Key string `envconfig:"LEADINTAKE_ADMIN_KEY"`
}

func (a AdminConfig) Enabled() bool {
	return a.Key != ""
}

// A key with surrounding whitespace can never be typed back into ?key= or the
// header reliably, so it is rejected instead of silently trimmed.
func (a AdminConfig) validate() error {
	if a.Key != strings.TrimSpace(a.Key) {
		return fmt.Errorf("%s must not have leading or trailing whitespace", EnvAdminKey)
	}
	return nil
}

type CheckoutConfig struct {
	PaidMode      bool   `envconfig:"LEADINTAKE_PAID_MODE" default:"false"`
	PublicBaseURL string `envconfig:"LEADINTAKE_PUBLIC_BASE_URL" default:"http://localhost:8080"`
	PriceCents    int64  `envconfig:"LEADINTAKE_PRICE_CENTS" default:"4900"`
	Currency      string `envconfig:"LEADINTAKE_CURRENCY" default:"usd"`
	ProductName   string `envconfig:"LEADINTAKE_PRODUCT_NAME" default:"Lead Intake"`
}

// SuccessURL is where the provider sends the browser once checkout completes.
// The placeholder is substituted by Stripe.
func (c CheckoutConfig) SuccessURL() string {
	return c.PublicBaseURL + "/intake?session_id={CHECKOUT_SESSION_ID}"
}

func (c CheckoutConfig) CancelURL() string {
	return c.PublicBaseURL + "/"
}

func (c *CheckoutConfig) normalize() error {
	base := strings.TrimRight(strings.TrimSpace(c.PublicBaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", EnvPublicBaseURL, c.PublicBaseURL)
	}
	c.PublicBaseURL = base

	if c.PriceCents <= 0 {
		return fmt.Errorf("%s must be positive", EnvPriceCents)
	}
	c.Currency = strings.ToLower(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = "usd"
	}
	if !isCurrencyCode(c.Currency) {
		return fmt.Errorf("%s must be a three-letter ISO code, got %q", EnvCurrency, c.Currency)
	}
	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

type DBConfig struct {
	Driver string `envconfig:"LEADINTAKE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"LEADINTAKE_DB_DSN" default:"leads.db"`

	MaxOpenConns    int           `envconfig:"LEADINTAKE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LEADINTAKE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LEADINTAKE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEADINTAKE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) validate() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DBDriverSQLite, DBDriverPostgres, db.Driver)
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LEADINTAKE_REDIS_URL"`
	PoolSize     int           `envconfig:"LEADINTAKE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEADINTAKE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEADINTAKE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEADINTAKE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LEADINTAKE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

func (r RedisConfig) validate() error {
	if !r.Enabled() {
		return nil
	}
	parsed, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil || (parsed.Scheme != "redis" && parsed.Scheme != "rediss") {
		return fmt.Errorf("%s must be a redis:// or rediss:// URL", EnvRedisURL)
	}
	return nil
}

type RateLimitConfig struct {
	SubmitLimit      int           `envconfig:"LEADINTAKE_SUBMIT_RATE_LIMIT" default:"10"`
	SubmitEmailLimit int           `envconfig:"LEADINTAKE_SUBMIT_EMAIL_RATE_LIMIT" default:"5"`
	SubmitWindow     time.Duration `envconfig:"LEADINTAKE_SUBMIT_RATE_WINDOW" default:"1m"`
	// TrustProxyHeaders keys per-IP limits on X-Forwarded-For. Set it only
	// behind a proxy that rewrites the header.
	TrustProxyHeaders bool `envconfig:"LEADINTAKE_TRUST_PROXY_HEADERS" default:"false"`
}

type StripeConfig struct {
	APIKey string `envconfig:"LEADINTAKE_STRIPE_API_KEY"`
	Env    string `envconfig:"LEADINTAKE_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// Configured reports whether a provider credential is present.
func (s StripeConfig) Configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}
