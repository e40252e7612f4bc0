package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Middleware instruments every request passing through the wrapped handler.
// Scrapes of excludePath are not recorded so the scraper does not inflate its
// own numbers. Instrumentation is observational only and never alters the
// response.
func (m *Metrics) Middleware(excludePath string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if excludePath != "" && r.URL.Path == excludePath {
			next.ServeHTTP(w, r)
			return
		}

		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		m.Observe(r.Method, routeLabel(r), strconv.Itoa(status), time.Since(start).Seconds())
	})
}

// unmatchedRoute labels requests that hit no registered pattern. Folding them
// into one value keeps path scanners from growing the label set.
const unmatchedRoute = "unmatched"

// routeLabel prefers the matched mux pattern so parameterized routes share one
// label value instead of one per video ID.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	// Patterns look like "GET /api/videos/{id}"; strip the method.
	if _, path, found := strings.Cut(r.Pattern, " "); found {
		return path
	}
	return r.Pattern
}
