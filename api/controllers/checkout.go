package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	"github.com/angelmondragon/leadintake/api/validators"
	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/leads"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// CheckoutStarter opens a hosted checkout and returns its redirect URL.
type CheckoutStarter interface {
	CreateCheckoutSession(ctx context.Context) (string, error)
}

// CreateCheckoutSession redirects the visitor to the payment provider.
func CreateCheckoutSession(starter CheckoutStarter, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		url, err := starter.CreateCheckoutSession(ctx)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

// Intake shows the post-payment form once the session is confirmed paid.
func Intake(verifier leads.PaymentVerifier, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := r.URL.Query().Get("session_id")

		record, err := verifier.VerifyPaid(ctx, sessionID)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		view := views.IntakeView{
			Title:     "Tell us more",
			SessionID: record.SessionID,
			Email:     record.CustomerEmail,
		}
		if err := renderer.Render(w, http.StatusOK, views.PageIntake, view); err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}

// SubmitPaid stores the intake form submitted after payment.
func SubmitPaid(svc leads.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID, err := validators.FormValue(w, r, "session_id")
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}
		req, err := validators.DecodeSubmission(w, r)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		lead, err := svc.SubmitPaid(ctx, sessionID, req.ToSubmission())
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		view := views.PaidConfirmationView{Title: "Thank you", LeadID: lead.ID}
		if err := renderer.Render(w, http.StatusOK, views.PagePaidConfirmation, view); err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}
