package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vitalvas/reqschema/rules"
	"github.com/vitalvas/reqschema/schema"
	"github.com/vitalvas/reqschema/source"
)

// ErrorResponse is the body written by the default error handler.
type ErrorResponse struct {
	Error            string                 `json:"error"`
	ErrorID          string                 `json:"errorId"`
	ValidationErrors []rules.ValidationError `json:"validationErrors,omitempty"`
}

// StatusCode maps a Process error to an HTTP status:
//   - 413 for bodies over MaxBodyBytes
//   - 415 for bodies of an unsupported media type
//   - 400 for unreadable or malformed bodies
//   - 422 for validation failures
//   - 500 for everything else
func StatusCode(err error) int {
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, source.ErrBody):
		return http.StatusBadRequest
	case errors.Is(err, schema.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err under a fresh error id and writes it as an
// ErrorResponse. Server errors are reported with their status text only.
func (p *Pipeline) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	id := uuid.NewString()

	level := slog.LevelInfo
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	p.logger.LogAttrs(r.Context(), level, "request parameters rejected",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.String("error_id", id),
		slog.Any("error", err),
	)

	resp := ErrorResponse{
		Error:   err.Error(),
		ErrorID: id,
	}

	if code >= http.StatusInternalServerError {
		resp.Error = http.StatusText(code)
	}

	var verrs rules.ValidationErrors
	if errors.As(err, &verrs) {
		resp.ValidationErrors = verrs
	}

	writeJSON(w, code, resp)
}

// writeJSON encodes v as JSON and writes it with the given status code.
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
