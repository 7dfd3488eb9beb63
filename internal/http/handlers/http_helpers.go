package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/storefront-api/internal/apperr"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body must not be empty")
		}
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (s *Server) writeSuccess(w http.ResponseWriter, status int, payload any) {
	if err := writeJSON(w, status, Envelope{Status: statusSuccess, Payload: payload}); err != nil {
		s.log.Warn("failed to write JSON response", "error", err)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, msg string) {
	env := Envelope{Status: statusSuccess, Message: msg}
	if status >= http.StatusBadRequest {
		env.Status = statusError
	}
	if err := writeJSON(w, status, env); err != nil {
		s.log.Warn("failed to write JSON response", "error", err)
	}
}

func (s *Server) writeValidationErrors(w http.ResponseWriter, errs []ValidationError) {
	env := Envelope{Status: statusError, Message: "validation failed", Errors: errs}
	if err := writeJSON(w, http.StatusBadRequest, env); err != nil {
		s.log.Warn("failed to write JSON response", "error", err)
	}
}

// StatusFor maps an error condition to its HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeMessage(w, status, apperr.Message(err))
}
