package payments

import (
	"context"

	"github.com/stripe/stripe-go/v84"
)

// SessionAPI exposes the subset of checkout session operations the payment
// flows require. *pkgstripe.Client satisfies it.
type SessionAPI interface {
	Configured() bool
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// BalanceAPI reads the account balance.
type BalanceAPI interface {
	Configured() bool
	GetBalance(ctx context.Context) (*stripe.Balance, error)
}
