// Package respond writes JSON responses and maps engine failures to HTTP
// status codes.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/quillbooks/quillbooks/internal/fault"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error maps a failure kind to its status class. Anything without a kind is
// an internal error: logged in full, surfaced opaquely.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind, ok := fault.KindOf(err)
	if !ok {
		hlog.FromRequest(r).Error().Err(err).Msg("internal error")
		JSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	var status int
	switch kind {
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindUnauthorized:
		status = http.StatusUnauthorized
	case fault.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusBadRequest
	}

	JSON(w, r, status, errorResponse{Error: err.Error()})
}

// Invalid reports a malformed request without going through the engines.
func Invalid(w http.ResponseWriter, r *http.Request, message string) {
	JSON(w, r, http.StatusBadRequest, errorResponse{Error: message})
}

// Page is the envelope every list endpoint returns.
type Page struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}
