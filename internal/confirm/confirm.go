package confirm

import (
	"context"
	"log"
)

// Confirmation is what a completed hosted payment tells us. No order
// record exists in this scope, so the provider session id is the only
// handle downstream consumers get.
type Confirmation struct {
	SessionID        string `json:"session_id"`
	AmountTotalCents int64  `json:"amount_total_cents"`
	Currency         string `json:"currency"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	PaymentStatus    string `json:"payment_status"`
}

// Confirmer is the injected confirmation action. Today it records the
// payment; order finalization, inventory allocation and customer
// notification hang off this seam later.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, c Confirmation) error
}

// LogConfirmer is the no-broker fallback: a log record only.
type LogConfirmer struct{}

func (LogConfirmer) ConfirmPayment(_ context.Context, c Confirmation) error {
	log.Printf("payment confirmed: session=%s amount=%d %s status=%s email=%s",
		c.SessionID, c.AmountTotalCents, c.Currency, c.PaymentStatus, c.CustomerEmail)
	return nil
}
