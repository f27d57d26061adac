package handlers

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

type Products struct {
	List func(ctx context.Context) ([]models.Product, error)
}

func (h *Products) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	products, err := h.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
