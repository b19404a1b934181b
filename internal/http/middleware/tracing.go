package middleware

import (
	"net/http"
	"strings"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"

	"github.com/luxor-creek/Personalized-App/pkg/tracing"
)

// public page prefixes whose trailing segment is a signed token or a slug
var pageRoutes = []struct {
	prefix  string
	surface string
}{
	{prefix: "/view/", surface: tracing.SurfaceView},
	{prefix: "/builder-preview/", surface: tracing.SurfacePreview},
}

// TracingMiddleware starts a server span per request. ochttp records the
// status; the span is tagged with the owner, request id and page surface.
func TracingMiddleware(next http.Handler) http.Handler {
	return &ochttp.Handler{
		Handler: annotate(next),
		FormatSpanName: func(r *http.Request) string {
			route, _ := routeOf(r.URL.Path)
			return r.Method + " " + route
		},
		IsPublicEndpoint: true,
	}
}

func annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			route, surface := routeOf(r.URL.Path)
			// ochttp already recorded the raw path and URL
			attrs := []trace.Attribute{
				trace.StringAttribute(ochttp.PathAttribute, route),
				trace.StringAttribute(ochttp.URLAttribute, route),
				trace.StringAttribute("http.route", route),
			}
			if surface != "" {
				attrs = append(attrs, trace.StringAttribute("pagekit.surface", surface))
			}
			if id := r.Header.Get("X-Request-ID"); id != "" {
				attrs = append(attrs, trace.StringAttribute("http.request_id", id))
			}
			if owner := strings.TrimSpace(r.Header.Get(OwnerHeader)); owner != "" {
				attrs = append(attrs, trace.StringAttribute("pagekit.owner_id", owner))
			}
			span.AddAttributes(attrs...)
		}
		next.ServeHTTP(w, r)
	})
}

// routeOf replaces page tokens and slugs with a placeholder
func routeOf(path string) (route, surface string) {
	for _, p := range pageRoutes {
		if strings.HasPrefix(path, p.prefix) {
			return p.prefix + "{id}", p.surface
		}
	}
	return path, ""
}
