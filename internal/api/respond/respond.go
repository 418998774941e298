// Package respond renders JSON response bodies and maps application errors
// onto HTTP statuses.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/d9705996/teamconnect/internal/apperr"
)

const contentType = "application/json; charset=utf-8"

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Message is the body of responses that only carry a human-readable note.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// List writes a JSON array; a nil slice is rendered as [].
func List[T any](w http.ResponseWriter, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, status, items)
}

// ErrorMessage writes an error body built from its parts.
func ErrorMessage(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: message, Code: code})
}

// Error maps err onto a status through its apperr kind. Classified errors
// expose their message; anything else becomes a generic 500 whose cause is
// logged and echoed in details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
		JSON(w, http.StatusInternalServerError, ErrorBody{
			Error:   "internal server error",
			Code:    "internal",
			Details: err.Error(),
		})
		return
	}

	status := e.Kind.Status()
	body := ErrorBody{Error: e.Message, Code: e.Code}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "kind", e.Kind.String(), "err", err)
		body.Details = err.Error()
	}
	JSON(w, status, body)
}
