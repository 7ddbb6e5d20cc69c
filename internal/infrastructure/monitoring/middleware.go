package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func NewHTTPMetricsMiddleware(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}

	handlerName := extractHandlerName(r.URL.Path)

	m.next.ServeHTTP(wrapped, r)

	duration := time.Since(start).Seconds()
	statusCode := strconv.Itoa(wrapped.statusCode)

	HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(duration)
	HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "admin/"):
		return "admin"
	case strings.HasPrefix(path, "items/trending"):
		return "trending"
	case strings.HasSuffix(path, "/offers") || strings.Contains(path, "/offers/"):
		return "offers"
	case strings.HasSuffix(path, "/purchase"):
		return "purchase"
	case strings.HasSuffix(path, "/like") || strings.HasSuffix(path, "/likers") || strings.HasSuffix(path, "/tip"):
		return "engagement"
	case strings.HasSuffix(path, "/list") || strings.HasSuffix(path, "/price") || strings.HasSuffix(path, "/transfer"):
		return "listing"
	case strings.HasPrefix(path, "items"):
		return "items"
	case strings.HasPrefix(path, "health"):
		return "health"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	default:
		return "unknown"
	}
}

func WrapHandler(handler http.Handler) http.Handler {
	return NewHTTPMetricsMiddleware(handler)
}
