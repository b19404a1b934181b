package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Limiter decides whether a caller may make another request in a namespace
type Limiter interface {
	Allow(namespace, key string) (bool, time.Duration)
}

// RateClassifier picks the namespace and caller key a request counts against.
// ok is false for requests that are not limited.
type RateClassifier func(r *http.Request) (namespace, key string, ok bool)

// RateLimitMiddleware answers 429 with a Retry-After header once a caller
// exhausts its namespace
func RateLimitMiddleware(limiter Limiter, classify RateClassifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			namespace, key, limited := classify(r)
			if !limited {
				next.ServeHTTP(w, r)
				return
			}
			if ok, retry := limiter.Allow(namespace, key); !ok {
				seconds := int(math.Ceil(retry.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, falling back to the remote address
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
