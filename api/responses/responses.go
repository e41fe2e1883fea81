package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/angelmondragon/leadintake/api/views"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteError renders err as the JSON error envelope.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, meta := resolve(ctx, logg, err)

	payload := types.ErrorEnvelope{
		Error: types.ErrorBody{
			Code:    string(typed.Code()),
			Message: typed.PublicMessage(),
		},
		RequestID: w.Header().Get(types.RequestIDHeader),
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	WriteJSON(w, meta.HTTPStatus, payload)
}

// WriteHTMLError renders err as an escaped error page with the mapped status.
func WriteHTMLError(ctx context.Context, logg *logger.Logger, renderer *views.Renderer, w http.ResponseWriter, err error, backURL string) {
	typed, meta := resolve(ctx, logg, err)

	view := views.NewErrorView(meta.HTTPStatus, typed.PublicMessage(), backURL)
	view.RequestID = w.Header().Get(types.RequestIDHeader)
	if renderErr := renderer.Render(w, meta.HTTPStatus, views.PageError, view); renderErr != nil {
		if logg != nil {
			logg.Error(ctx, "failed to render error page", renderErr)
		}
		http.Error(w, typed.PublicMessage(), meta.HTTPStatus)
	}
}

func resolve(ctx context.Context, logg *logger.Logger, err error) (*pkgerrors.Error, pkgerrors.Metadata) {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.Normalize(err)
	meta := pkgerrors.MetadataFor(typed.Code())

	if logg != nil {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}
	return typed, meta
}

// WriteJSON encodes payload without an envelope.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
