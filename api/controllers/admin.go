package controllers

import (
	"bytes"
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	"github.com/angelmondragon/leadintake/api/validators"
	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/leads"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/types"
)

// AdminLeads renders the most recent leads as an HTML table.
func AdminLeads(svc leads.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.Recent(ctx, leads.DefaultRecentLimit)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}
		total, err := svc.Count(ctx)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, renderer, w, err, "/")
			return
		}

		if err := renderer.Render(w, http.StatusOK, views.PageAdmin, views.NewAdminView(rows, total)); err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}

// AdminUnauthorized renders the HTML denial page used by /admin.
func AdminUnauthorized(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := renderer.Render(w, http.StatusUnauthorized, views.PageUnauthorized, views.UnauthorizedView{Title: "Unauthorized"}); err != nil {
			renderFailed(r, w, logg, err)
		}
	}
}

// ExportLeadsCSV downloads every lead, newest first.
func ExportLeadsCSV(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.All(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var buf bytes.Buffer
		if err := leads.WriteCSV(&buf, rows); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode export"))
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// ListLeads returns a page of leads as JSON, newest first.
func ListLeads(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParseListParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		total, err := svc.Count(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list := types.NewLeadList(page.Leads, total)
		list.NextCursor = page.NextCursor
		responses.WriteSuccess(w, list)
	}
}
