package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/leadintake/api/controllers"
	"github.com/angelmondragon/leadintake/api/middleware"
	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/leads"
	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/metrics"
)

// Dependencies carries everything the router wires into handlers. Optional
// collaborators (RateLimitStore, Redis, Gatherer) must be left nil, not set to
// a typed nil pointer, when unavailable.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	Renderer *views.Renderer

	Leads    leads.Service
	Verifier leads.PaymentVerifier
	Checkout controllers.CheckoutStarter
	Balance  controllers.BalanceReader
	Gate     middleware.KeyAuthorizer

	Metrics        *metrics.LeadMetrics
	Gatherer       prometheus.Gatherer
	RateLimitStore middleware.RateLimitStore

	DB    controllers.Pinger
	Redis controllers.Pinger
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	submitPolicy := middleware.NewRateLimitPolicy(
		"submit",
		cfg.RateLimit.SubmitWindow,
		cfg.RateLimit.SubmitLimit,
		cfg.RateLimit.SubmitEmailLimit,
	).WithTrustedProxy(cfg.RateLimit.TrustProxyHeaders)
	submitLimit := middleware.RateLimit(submitPolicy, deps.RateLimitStore, logg)

	headerAdmin := middleware.RequireAdminKey(deps.Gate, middleware.HeaderKey, nil, logg)
	queryAdmin := middleware.RequireAdminKey(deps.Gate, middleware.QueryKey, controllers.AdminUnauthorized(deps.Renderer, logg), logg)

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	r.Get("/", controllers.Home(cfg.Checkout, deps.Renderer, logg))
	r.Get("/thanks", controllers.Thanks(deps.Renderer, logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/ready", controllers.HealthReady(logg, deps.DB, deps.Redis))
	})

	r.With(submitLimit).Post("/submit", controllers.SubmitLead(deps.Leads, logg))
	r.With(submitLimit).Post("/submit-form", controllers.SubmitLeadForm(deps.Leads, deps.Renderer, logg))

	r.Post("/create-checkout-session", controllers.CreateCheckoutSession(deps.Checkout, deps.Renderer, logg))
	r.Get("/intake", controllers.Intake(deps.Verifier, deps.Renderer, logg))
	r.With(submitLimit).Post("/submit_paid", controllers.SubmitPaid(deps.Leads, deps.Renderer, logg))

	r.With(queryAdmin).Get("/admin", controllers.AdminLeads(deps.Leads, deps.Renderer, logg))
	r.Group(func(r chi.Router) {
		r.Use(headerAdmin)
		r.Get("/export.csv", controllers.ExportLeadsCSV(deps.Leads, logg))
		r.Get("/leads", controllers.ListLeads(deps.Leads, logg))
		r.Get("/stripe-balance-check", controllers.StripeBalanceCheck(deps.Balance, logg))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
