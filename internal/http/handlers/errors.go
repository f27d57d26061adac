package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/models"
)

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single place domain errors become status codes. Clients
// only ever see the generic message, never internals.
func writeError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var ce *models.InvalidCartError
	var ue *models.UpstreamError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: ve.Msg})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid product in cart"})
	case errors.Is(err, models.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "email already registered"})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid credentials"})
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResp{Error: "unauthorized"})
	case errors.As(err, &ue):
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "upstream error"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}
