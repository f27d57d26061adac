package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, models.UserView, error)
	Login(ctx context.Context, email, password string) (string, models.UserView, error)
	Me(ctx context.Context, subjectID string) (models.UserView, error)
}

type Auth struct {
	Svc AuthService
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResp struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.Invalid("bad json"))
		return
	}
	token, user, err := h.Svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Token: token, User: user})
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.Invalid("bad json"))
		return
	}
	token, user, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Token: token, User: user})
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthorized)
		return
	}
	user, err := h.Svc.Me(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.UserView{"user": user})
}

// Logout is stateless: the token lives client-side and is simply discarded.
func (h *Auth) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
