// Package httputil shapes the JSON envelopes every handler returns.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/handika51/openmusic-api/internal/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes {"status":"success"} plus an optional message and data.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	body := map[string]any{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	WriteJSON(w, status, body)
}

func WriteFail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{
		"status":  "fail",
		"message": message,
	})
}

// WriteError maps err onto its status code. Errors without a domain kind are
// logged, reported to Sentry and hidden from the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status < http.StatusInternalServerError {
		WriteFail(w, status, apperr.Message(err))
		return
	}

	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Errorf("request failed: %v", err)
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}

	WriteJSON(w, status, map[string]any{
		"status":  "error",
		"message": "internal server error",
	})
}

// DecodeJSON decodes the request body into v, reporting a validation error
// for malformed input.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid JSON body")
	}
	return nil
}
