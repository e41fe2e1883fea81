package controllers

import (
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	"github.com/angelmondragon/leadintake/api/validators"
	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/leads"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/types"
)

// SubmitLead handles the JSON free-flow submission.
func SubmitLead(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		req, err := validators.DecodeSubmission(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lead, err := svc.SubmitFree(ctx, req.ToSubmission())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, types.SubmitResult{Saved: true, ID: lead.ID})
	}
}

// SubmitLeadForm handles the HTML contact form and redirects to /thanks.
func SubmitLeadForm(svc leads.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"), "/")
			return
		}

		req, err := validators.DecodeSubmission(w, r)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		if _, err := svc.SubmitFree(ctx, req.ToSubmission()); err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		http.Redirect(w, r, "/thanks", http.StatusSeeOther)
	}
}
