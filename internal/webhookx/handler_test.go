package webhookx

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ariefcatur/go-storefront.git/internal/confirm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierMock struct {
	event Event
	err   error
}

func (v verifierMock) Verify(_ []byte, _ string) (Event, error) {
	return v.event, v.err
}

type confirmerMock struct {
	calls []confirm.Confirmation
}

func (c *confirmerMock) ConfirmPayment(_ context.Context, conf confirm.Confirmation) error {
	c.calls = append(c.calls, conf)
	return nil
}

func TestBadSignatureNeverConfirms(t *testing.T) {
	cm := &confirmerMock{}
	h := &Handler{
		Verifier:  verifierMock{err: fmt.Errorf("%w: hmac mismatch", ErrBadSignature)},
		Confirmer: cm,
	}

	err := h.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bogus")
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.Empty(t, cm.calls)
}

func TestCompletedSessionConfirmsOnce(t *testing.T) {
	data, _ := json.Marshal(map[string]any{
		"id":             "cs_test_abc",
		"amount_total":   6200,
		"currency":       "jpy",
		"payment_status": "paid",
		"customer_details": map[string]any{
			"email": "taro@example.com",
		},
	})
	cm := &confirmerMock{}
	h := &Handler{
		Verifier:  verifierMock{event: Event{Type: EventCheckoutCompleted, Data: data}},
		Confirmer: cm,
	}

	err := h.HandleEvent(context.Background(), data, "t=1,v1=ok")
	require.NoError(t, err)

	require.Len(t, cm.calls, 1)
	assert.Equal(t, confirm.Confirmation{
		SessionID:        "cs_test_abc",
		AmountTotalCents: 6200,
		Currency:         "jpy",
		CustomerEmail:    "taro@example.com",
		PaymentStatus:    "paid",
	}, cm.calls[0])
}

func TestTopLevelCustomerEmailWins(t *testing.T) {
	data, _ := json.Marshal(map[string]any{
		"id":             "cs_test_abc",
		"amount_total":   100,
		"currency":       "jpy",
		"payment_status": "paid",
		"customer_email": "direct@example.com",
	})
	cm := &confirmerMock{}
	h := &Handler{
		Verifier:  verifierMock{event: Event{Type: EventCheckoutCompleted, Data: data}},
		Confirmer: cm,
	}

	require.NoError(t, h.HandleEvent(context.Background(), data, "sig"))
	require.Len(t, cm.calls, 1)
	assert.Equal(t, "direct@example.com", cm.calls[0].CustomerEmail)
}

func TestUnmodelledEventIsAcknowledged(t *testing.T) {
	cm := &confirmerMock{}
	h := &Handler{
		Verifier:  verifierMock{event: Event{Type: "payment_intent.created", Data: []byte(`{}`)}},
		Confirmer: cm,
	}

	err := h.HandleEvent(context.Background(), []byte(`{}`), "sig")
	assert.NoError(t, err)
	assert.Empty(t, cm.calls)
}

func TestMalformedSessionData(t *testing.T) {
	cm := &confirmerMock{}
	h := &Handler{
		Verifier:  verifierMock{event: Event{Type: EventCheckoutCompleted, Data: []byte(`{"amount_total":`)}},
		Confirmer: cm,
	}

	err := h.HandleEvent(context.Background(), []byte(`{}`), "sig")
	assert.ErrorIs(t, err, ErrBadPayload)
	assert.Empty(t, cm.calls)
}
