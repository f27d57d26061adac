package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/checkout"
	"storefront/internal/models"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, email string, items []checkout.CartItem) (checkout.Session, error)
	SessionStatus(ctx context.Context, sessionID string) (checkout.SessionStatus, error)
}

type Checkout struct {
	Svc CheckoutService
}

type createSessionReq struct {
	Email string              `json:"email"`
	Items []checkout.CartItem `json:"items"`
}

type createSessionResp struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (h *Checkout) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.Invalid("bad json"))
		return
	}
	sess, err := h.Svc.CreateSession(r.Context(), req.Email, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createSessionResp{ID: sess.ID, URL: sess.URL})
}

func (h *Checkout) SessionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Svc.SessionStatus(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
