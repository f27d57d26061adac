package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/pkg/metrics"
)

type Handlers struct {
	Health                http.HandlerFunc
	Register              http.HandlerFunc
	Login                 http.HandlerFunc
	Logout                http.HandlerFunc
	Me                    http.HandlerFunc
	ListProducts          http.HandlerFunc
	CreateCheckoutSession http.HandlerFunc
	SessionStatus         http.HandlerFunc
	Webhook               http.HandlerFunc
	ListOrders            http.HandlerFunc
	RequireAuth           func(http.Handler) http.Handler
}

func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware("storefront"))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	// The webhook consumes the raw body for signature verification, so it
	// stays outside the /api JSON surface.
	r.Post("/webhook", h.Webhook)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/products", h.ListProducts)
		r.Post("/create-checkout-session", h.CreateCheckoutSession)
		r.Get("/session-status", h.SessionStatus)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Get("/auth/me", h.Me)
			r.Get("/orders", h.ListOrders)
		})
	})
	return r
}
