package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/internal/service/importer"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// maxJSONBody bounds JSON request bodies; file uploads use multipart limits
const maxJSONBody = 2 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

// decodeJSON decodes a bounded request body into v and writes the 400 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// requireMethod writes a 405 unless r uses method
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func ownerID(r *http.Request) string {
	id, _ := middleware.OwnerIDFromContext(r.Context())
	return id
}

// writeServiceError maps a domain error to its status code. Server side
// failures are logged and reported as "Failed to <action>".
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, action string) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithField("error", err.Error()).Error("Failed to " + action)
		message = "Failed to " + action
	}
	WriteJSONError(w, message, status)
}

func errorStatus(err error) (int, string) {
	var (
		tooLarge   *domain.TooLargeError
		transition *domain.TransitionError
		fetchErr   *domain.FetchError
		handOff    *domain.HandOffError
		conflict   *domain.ConflictError
		configErr  *domain.ConfigurationError
		validation domain.ValidationError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, tooLarge.Error()
	case errors.As(err, &transition):
		return http.StatusConflict, transition.Error()
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error()
	case errors.Is(err, importer.ErrIngestionDiscarded), errors.Is(err, importer.ErrIngestionPending),
		errors.Is(err, importer.ErrCommitPending):
		return http.StatusConflict, err.Error()
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, fetchErr.Message
	case errors.As(err, &handOff):
		return http.StatusBadGateway, handOff.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, ""
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	}
	return http.StatusInternalServerError, ""
}
