package tracing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

// StartServiceSpan starts a span named "Service.Method"
func StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, serviceName+"."+methodName)
}

// EndSpan sets the span status from err and ends it
func EndSpan(span *trace.Span, err error) {
	if err != nil {
		span.SetStatus(trace.Status{Code: statusCode(err), Message: err.Error()})
	}
	span.End()
}

// statusCode maps domain errors onto trace status codes
func statusCode(err error) int32 {
	var (
		tooLarge   *domain.TooLargeError
		fetchErr   *domain.FetchError
		handOff    *domain.HandOffError
		transition *domain.TransitionError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return trace.StatusCodeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return trace.StatusCodeDeadlineExceeded
	case domain.IsNotFound(err):
		return trace.StatusCodeNotFound
	case errors.As(err, &tooLarge):
		return trace.StatusCodeResourceExhausted
	case errors.As(err, &fetchErr), errors.As(err, &handOff):
		return trace.StatusCodeUnavailable
	case errors.As(err, &transition):
		return trace.StatusCodeFailedPrecondition
	case errors.As(err, &conflict):
		return trace.StatusCodeAborted
	case domain.IsValidationError(err):
		return trace.StatusCodeInvalidArgument
	}
	return trace.StatusCodeUnknown
}

// WrapHTTPClient returns a copy of client whose requests are traced. A nil
// client gets a 30 second timeout.
func WrapHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &http.Client{
		Transport: &ochttp.Transport{
			Base: client.Transport,
			FormatSpanName: func(req *http.Request) string {
				return fmt.Sprintf("%s %s", req.Method, req.URL.Host)
			},
		},
		Timeout:       client.Timeout,
		Jar:           client.Jar,
		CheckRedirect: client.CheckRedirect,
	}
}
