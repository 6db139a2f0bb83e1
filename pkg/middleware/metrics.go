package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"flipfit/pkg/metrics"
)

// segments followed by a caller-supplied identifier
var idParents = map[string]bool{
	"id":            true,
	"customers":     true,
	"gyms":          true,
	"cities":        true,
	"notifications": true,
	"slots":         true,
}

var staticSegments = map[string]bool{
	"nearest":       true,
	"read":          true,
	"active":        true,
	"bookings":      true,
	"waitlist":      true,
	"plan":          true,
	"notifications": true,
	"slots":         true,
	"gyms":          true,
}

// Metrics records request counts and latency with identifiers collapsed out of the path.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			metrics.RecordHTTPRequest(r.Method, RoutePattern(r.URL.Path), strconv.Itoa(wrapped.statusCode), time.Since(start).Seconds())
		})
	}
}

// RoutePattern maps /api/v1/gyms/GYM1/slots to /api/v1/gyms/:param/slots.
func RoutePattern(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(parts); i++ {
		if idParents[parts[i-1]] && !staticSegments[parts[i]] && parts[i-1] != ":param" {
			parts[i] = ":param"
		}
	}
	return "/" + strings.Join(parts, "/")
}
