package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/leadintake/pkg/metrics"
)

// Metrics records request counts and latency labelled by chi route pattern,
// so path parameters and query strings never explode label cardinality.
func Metrics(m *metrics.LeadMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.ObserveRequest(routePattern(r), r.Method, rec.statusCode(), time.Since(start))
		})
	}
}
