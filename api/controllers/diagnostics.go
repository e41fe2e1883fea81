package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	"github.com/angelmondragon/leadintake/internal/payments"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// BalanceReader fetches the provider account balance.
type BalanceReader interface {
	CheckBalance(ctx context.Context) (*payments.BalanceReport, error)
}

// StripeBalanceCheck reports whether the configured credential works. The raw
// provider error is echoed so operators can diagnose key problems.
func StripeBalanceCheck(reader BalanceReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		report, err := reader.CheckBalance(ctx)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "stripe balance check failed", err)
			}
			responses.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}

		responses.WriteJSON(w, http.StatusOK, report)
	}
}
