package controllers

import (
	"net/http"

	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/payments"
	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// Home renders the contact form, or the pay-to-continue page in paid mode.
func Home(cfg config.CheckoutConfig, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		if cfg.PaidMode {
			err = renderer.Render(w, http.StatusOK, views.PageHomePaid, views.HomePaidView{
				Title:       cfg.ProductName,
				ProductName: cfg.ProductName,
				Price:       payments.FormatPrice(cfg.PriceCents, cfg.Currency),
			})
		} else {
			err = renderer.Render(w, http.StatusOK, views.PageHome, views.HomeView{Title: "Contact us"})
		}
		if err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}

func Thanks(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := renderer.Render(w, http.StatusOK, views.PageThanks, views.ThanksView{Title: "Thanks"}); err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}

func renderFailed(r *http.Request, w http.ResponseWriter, logg *logger.Logger, err error) {
	if logg != nil {
		logg.Error(r.Context(), "failed to render page", err)
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
