package stripex

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/webhookx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe documents
// it: HMAC-SHA256 over "{timestamp}.{payload}".
func signPayload(secret string, payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload() []byte {
	return []byte(`{
		"id": "evt_test_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_abc",
				"object": "checkout.session",
				"amount_total": 6200,
				"currency": "jpy",
				"payment_status": "paid"
			}
		}
	}`)
}

func TestVerifyValidSignature(t *testing.T) {
	c := New("sk_test_key", testWebhookSecret, "http://localhost:8080")
	payload := eventPayload()

	ev, err := c.Verify(payload, signPayload(testWebhookSecret, payload, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", ev.Type)
	assert.Contains(t, string(ev.Data), "cs_test_abc")
}

func TestVerifyWrongSecret(t *testing.T) {
	c := New("sk_test_key", testWebhookSecret, "http://localhost:8080")
	payload := eventPayload()

	_, err := c.Verify(payload, signPayload("whsec_other", payload, time.Now()))
	assert.ErrorIs(t, err, webhookx.ErrBadSignature)
}

func TestVerifyTamperedPayload(t *testing.T) {
	c := New("sk_test_key", testWebhookSecret, "http://localhost:8080")
	payload := eventPayload()
	header := signPayload(testWebhookSecret, payload, time.Now())

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-2] = ' '

	_, err := c.Verify(tampered, header)
	assert.ErrorIs(t, err, webhookx.ErrBadSignature)
}

func TestVerifyMissingHeader(t *testing.T) {
	c := New("sk_test_key", testWebhookSecret, "http://localhost:8080")

	_, err := c.Verify(eventPayload(), "")
	assert.ErrorIs(t, err, webhookx.ErrBadSignature)
}

func TestVerifyStaleTimestamp(t *testing.T) {
	c := New("sk_test_key", testWebhookSecret, "http://localhost:8080")
	payload := eventPayload()

	// outside Stripe's default 5 minute tolerance
	_, err := c.Verify(payload, signPayload(testWebhookSecret, payload, time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, webhookx.ErrBadSignature)
}
