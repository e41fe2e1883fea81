package payments

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// CheckoutCreator starts hosted checkout sessions for the single offering.
type CheckoutCreator struct {
	api  SessionAPI
	cfg  config.CheckoutConfig
	logg *logger.Logger
}

func NewCheckoutCreator(api SessionAPI, cfg config.CheckoutConfig, logg *logger.Logger) *CheckoutCreator {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CheckoutCreator{api: api, cfg: cfg, logg: logg}
}

// CreateCheckoutSession opens a one-time payment session and returns the URL
// the visitor must be redirected to.
func (c *CheckoutCreator) CreateCheckoutSession(ctx context.Context) (string, error) {
	if c == nil || c.api == nil || !c.api.Configured() {
		return "", pkgerrors.New(pkgerrors.CodeConfiguration, "stripe is not configured")
	}

	params := c.params()
	sess, err := c.api.CreateCheckoutSession(ctx, params)
	if err != nil {
		c.logg.Error(ctx, "checkout session creation failed", err)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not start checkout")
	}
	if sess == nil || strings.TrimSpace(sess.URL) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "checkout session has no redirect url")
	}

	c.logg.Info(c.logg.WithSessionID(ctx, sess.ID), "checkout session created")
	return sess.URL, nil
}

func (c *CheckoutCreator) params() *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.cfg.SuccessURL()),
		CancelURL:  stripe.String(c.cfg.CancelURL()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.cfg.Currency),
					UnitAmount: stripe.Int64(c.cfg.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(c.cfg.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("source", enums.LeadSourceWebPaid.String())
	return params
}
