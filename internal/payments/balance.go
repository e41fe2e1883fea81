package payments

import (
	"context"
	"errors"
)

// BalanceAmount is one currency bucket of the account balance.
type BalanceAmount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

// BalanceReport summarizes the provider balance for the diagnostics endpoint.
type BalanceReport struct {
	OK        bool            `json:"ok"`
	Livemode  bool            `json:"livemode"`
	Available []BalanceAmount `json:"available"`
	Pending   []BalanceAmount `json:"pending"`
}

var errBalanceNotConfigured = errors.New("stripe api key is not configured")

// BalanceChecker confirms the configured credential can reach the provider.
type BalanceChecker struct {
	api BalanceAPI
}

func NewBalanceChecker(api BalanceAPI) *BalanceChecker {
	return &BalanceChecker{api: api}
}

// CheckBalance fetches the balance. Provider errors are returned untouched so the
// caller can echo them.
func (b *BalanceChecker) CheckBalance(ctx context.Context) (*BalanceReport, error) {
	if b == nil || b.api == nil || !b.api.Configured() {
		return nil, errBalanceNotConfigured
	}
	bal, err := b.api.GetBalance(ctx)
	if err != nil {
		return nil, err
	}

	report := &BalanceReport{
		OK:        true,
		Livemode:  bal.Livemode,
		Available: []BalanceAmount{},
		Pending:   []BalanceAmount{},
	}
	for _, amt := range bal.Available {
		if amt == nil {
			continue
		}
		report.Available = append(report.Available, newBalanceAmount(amt.Amount, string(amt.Currency)))
	}
	for _, amt := range bal.Pending {
		if amt == nil {
			continue
		}
		report.Pending = append(report.Pending, newBalanceAmount(amt.Amount, string(amt.Currency)))
	}
	return report, nil
}

func newBalanceAmount(amount int64, currency string) BalanceAmount {
	return BalanceAmount{Amount: amount, Currency: currency, Display: FormatPrice(amount, currency)}
}
