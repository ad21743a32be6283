// Package response writes API responses in the {"data": ..., "metadata": ...} envelope
// used by every handler, in JSON or msgpack depending on the Accept header.
package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/reporting"
	"github.com/rs/zerolog"
)

// Envelope is the body of every successful API response.
type Envelope struct {
	Data     interface{} `json:"data" msgpack:"data"`
	Metadata Metadata    `json:"metadata" msgpack:"metadata"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp string `json:"timestamp" msgpack:"timestamp"`
}

// ErrorBody is the body of an error response.
type ErrorBody struct {
	Error string `json:"error" msgpack:"error"`
}

// Write encodes data inside the envelope with the given status.
func Write(w http.ResponseWriter, r *http.Request, status int, data interface{}, log zerolog.Logger) {
	encode(w, r, status, Envelope{
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().Format(time.RFC3339)},
	}, log)
}

// Error maps err to a status code and writes it. Invalid input is 400,
// missing resources 404, everything else 500 with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error, log zerolog.Logger) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		msg = "internal error"
	}
	encode(w, r, status, ErrorBody{Error: msg}, log)
}

// BadRequest writes a 400 with msg.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string, log zerolog.Logger) {
	encode(w, r, http.StatusBadRequest, ErrorBody{Error: msg}, log)
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func encode(w http.ResponseWriter, r *http.Request, status int, body interface{}, log zerolog.Logger) {
	format := reporting.FormatFromAccept(r.Header.Get("Accept"))
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)

	if err := reporting.Encode(w, format, body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
