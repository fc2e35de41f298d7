// Package http is the REST transport of the server. It decodes requests,
// calls the services and translates their sentinel errors into status codes
// exactly once, at this boundary.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/miniblog/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a value we built ourselves; an error here means the connection
	// is gone and there is nothing left to tell the client.
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, messageResponse{Message: msg})
}

// respondError maps a service error to a status and body. Internal failures
// are logged with detail but answered with a generic body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		respondMessage(w, http.StatusUnauthorized, "missing token")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		respondMessage(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, common.ErrorForbidden):
		respondMessage(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, common.ErrorNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorNameExists):
		respondMessage(w, http.StatusBadRequest, "full name already in use")
	case errors.Is(err, common.ErrorEmailExists):
		respondMessage(w, http.StatusBadRequest, "email already in use")
	case errors.Is(err, common.ErrorBadPassword):
		respondMessage(w, http.StatusBadRequest, "wrong password")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody reads a JSON request body into dst. A malformed body is a
// client error and is answered directly.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
