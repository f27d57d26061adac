package checkout

import (
	"encoding/json"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"storefront/internal/models"
)

// Event is the distilled webhook notification the orchestrator consumes.
type Event struct {
	Type            string
	SessionID       string
	Email           string
	PaymentIntentID string
}

// ParseEvent decodes a raw webhook payload. With a configured secret the
// provider signature header is verified first and a mismatch rejects the
// delivery; without one the JSON body is trusted as-is (local development).
func ParseEvent(payload []byte, sigHeader, secret string) (Event, error) {
	var se stripe.Event
	if secret != "" {
		// Payloads may be pinned to an older API version than the SDK;
		// only the signature decides whether the delivery is genuine.
		verified, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			return Event{}, models.Invalid("webhook signature verification failed")
		}
		se = verified
	} else if err := json.Unmarshal(payload, &se); err != nil {
		return Event{}, models.Invalid("malformed webhook payload")
	}

	evt := Event{Type: string(se.Type)}
	if se.Data == nil || len(se.Data.Raw) == 0 {
		return evt, nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(se.Data.Raw, &sess); err != nil {
		return evt, nil
	}
	evt.SessionID = sess.ID
	evt.Email = sess.CustomerEmail
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		evt.Email = sess.CustomerDetails.Email
	}
	if sess.PaymentIntent != nil {
		evt.PaymentIntentID = sess.PaymentIntent.ID
	}
	return evt, nil
}
