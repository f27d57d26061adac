package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/checkout"
	"storefront/internal/models"
)

const maxWebhookBody = 1 << 20

// Webhook receives asynchronous payment notifications from the provider.
type Webhook struct {
	Secret    string
	Reconcile func(ctx context.Context, evt checkout.Event) error
	Log       zerolog.Logger
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, models.Invalid("unreadable payload"))
		return
	}

	evt, err := checkout.ParseEvent(payload, r.Header.Get("Stripe-Signature"), h.Secret)
	if err != nil {
		h.Log.Warn().Err(err).Msg("webhook rejected")
		writeError(w, err)
		return
	}

	// A failed reconciliation answers 5xx so the provider redelivers; the
	// upsert is idempotent per session id so redelivery is safe.
	if err := h.Reconcile(r.Context(), evt); err != nil {
		h.Log.Error().Err(err).Str("type", evt.Type).Str("session_id", evt.SessionID).Msg("webhook reconcile failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
