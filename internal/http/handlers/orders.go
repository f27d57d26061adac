package handlers

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

type Orders struct {
	ListByEmail func(ctx context.Context, email string) ([]models.Order, error)
	// GetUser resolves the email when the token claims lack one.
	GetUser func(ctx context.Context, subjectID string) (models.UserView, error)
}

func (h *Orders) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthorized)
		return
	}
	email := claims.Email
	if email == "" && h.GetUser != nil {
		if user, err := h.GetUser(r.Context(), claims.Subject); err == nil {
			email = user.Email
		}
	}
	if email == "" {
		writeError(w, models.Invalid("unable to resolve user email"))
		return
	}
	orders, err := h.ListByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
