package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

const completedPayload = `{
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "sess_1",
			"customer_email": "a@x.com",
			"customer_details": {"email": "details@x.com"},
			"payment_intent": "pi_1"
		}
	}
}`

// signPayload builds a Stripe-Signature header the way the provider does:
// an HMAC-SHA256 of "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestParseEvent_NoSecretTrustsBody(t *testing.T) {
	evt, err := ParseEvent([]byte(completedPayload), "", "")
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", evt.Type)
	assert.Equal(t, "sess_1", evt.SessionID)
	assert.Equal(t, "details@x.com", evt.Email, "customer_details email wins")
	assert.Equal(t, "pi_1", evt.PaymentIntentID)
}

func TestParseEvent_ValidSignature(t *testing.T) {
	payload := []byte(completedPayload)
	header := signPayload(payload, "whsec_test", time.Now())

	evt, err := ParseEvent(payload, header, "whsec_test")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", evt.SessionID)
}

func TestParseEvent_BadSignature(t *testing.T) {
	payload := []byte(completedPayload)
	header := signPayload(payload, "whsec_other", time.Now())

	var ve *models.ValidationError
	_, err := ParseEvent(payload, header, "whsec_test")
	assert.ErrorAs(t, err, &ve)

	_, err = ParseEvent(payload, "", "whsec_test")
	assert.ErrorAs(t, err, &ve, "missing header is rejected when a secret is configured")
}

func TestParseEvent_MalformedBody(t *testing.T) {
	var ve *models.ValidationError
	_, err := ParseEvent([]byte("not json"), "", "")
	assert.ErrorAs(t, err, &ve)
}

func TestParseEvent_NoSessionObject(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"type":"payment_intent.created"}`), "", "")
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", evt.Type)
	assert.Empty(t, evt.SessionID)
}
