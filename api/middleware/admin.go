package middleware

import (
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

const AdminKeyHeader = "x-admin-key"

// KeyAuthorizer decides whether a presented admin key is valid.
type KeyAuthorizer interface {
	Authorize(provided string) bool
}

// KeyExtractor pulls the presented admin key from a request.
type KeyExtractor func(*http.Request) string

// HeaderKey reads the admin key from the x-admin-key header.
func HeaderKey(r *http.Request) string {
	return r.Header.Get(AdminKeyHeader)
}

// QueryKey reads the admin key from the key query parameter.
func QueryKey(r *http.Request) string {
	return r.URL.Query().Get("key")
}

// RequireAdminKey rejects requests whose key the gate does not accept. Denied
// requests go to onDenied, or a JSON 401 when it is nil. Absent and wrong keys
// are indistinguishable to the caller.
func RequireAdminKey(gate KeyAuthorizer, extract KeyExtractor, onDenied http.Handler, logg *logger.Logger) func(http.Handler) http.Handler {
	if onDenied == nil {
		onDenied = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unauthorized"))
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil || !gate.Authorize(extract(r)) {
				if logg != nil {
					logg.Warn(r.Context(), "admin.denied")
				}
				onDenied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
