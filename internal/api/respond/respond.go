package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/json"

// Message is the uniform error body every failed request carries.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v with the given status. Encoding failures are logged
// and surface as a bare 500, the header is already written by then.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
		http.Error(w, `{"message":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// Error writes the uniform error body. Server errors log at error
// level with the underlying cause, client errors at warn.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
		// Internal details stay out of the response body.
		message = "internal server error"
	}
	event.
		Err(err).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(message)

	JSON(w, r, status, Message{Message: message})
}
