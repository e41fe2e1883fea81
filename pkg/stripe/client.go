package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/balance"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	// ErrNotConfigured is returned by every call when no API key was supplied.
	ErrNotConfigured    = errors.New("stripe api key is not configured")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// Client wraps Stripe's checkout and balance endpoints with a per-client key.
// A Client built without a key is valid but reports ErrNotConfigured.
type Client struct {
	sessions    *session.Client
	balance     *balance.Client
	environment string
}

// NewClient validates the configured key against the environment. A missing
// key is not an error: the service still boots and paid routes degrade.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		if logg != nil {
			logg.Warn(ctx, "stripe api key missing; paid checkout disabled")
		}
		return &Client{environment: env}, nil
	}

	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	backend := stripe.GetBackend(stripe.APIBackend)
	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		sessions:    &session.Client{B: backend, Key: apiKey},
		balance:     &balance.Client{B: backend, Key: apiKey},
		environment: env,
	}, nil
}

// Configured reports whether calls will reach Stripe.
func (c *Client) Configured() bool {
	return c != nil && c.sessions != nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// GetCheckoutSession retrieves a hosted checkout session by id.
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	return c.sessions.Get(id, params)
}

// CreateCheckoutSession opens a hosted checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if params == nil {
		params = &stripe.CheckoutSessionParams{}
	}
	params.Context = ctx
	return c.sessions.New(params)
}

// GetBalance returns the account balance; used only for operator diagnostics.
func (c *Client) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	params := &stripe.BalanceParams{}
	params.Context = ctx
	return c.balance.Get(params)
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("%s must be a test secret key (sk_test/rk_test) when stripe environment is %q", config.EnvStripeAPIKey, testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("%s must be a live secret key (sk_live/rk_live) when stripe environment is %q", config.EnvStripeAPIKey, liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
