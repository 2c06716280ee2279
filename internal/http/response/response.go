// Package response provides the JSON envelope shared by every HTTP response.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/calsync/calsync-server/internal/errors"
)

// EnvelopeVersion is the version of the response envelope contract.
const EnvelopeVersion = 1

// Envelope wraps successful response bodies.
type Envelope struct {
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorEnvelope wraps error responses.
type ErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Wrap returns the success envelope for data.
func Wrap(data any) Envelope {
	return Envelope{Version: EnvelopeVersion, Success: true, Data: data}
}

// WrapError returns the error envelope for a code and message.
func WrapError(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Version: EnvelopeVersion, Code: code, Message: message, Details: details}
}

// JSON writes data inside the success envelope.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	write(w, status, Wrap(data), logger)
}

// Error writes an error envelope with the given status code.
func Error(w http.ResponseWriter, status int, code, message string, logger *slog.Logger) {
	write(w, status, WrapError(code, message, nil), logger)
}

// NotFound writes a 404 for routes the router does not know.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusNotFound, string(domainerrors.CodeNotFound), "no route for "+r.URL.Path, logger)
	}
}

// MethodNotAllowed writes a 405 for known routes called with the wrong method.
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path, logger)
	}
}

func write(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}
