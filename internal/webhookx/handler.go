// Package webhookx processes signed payment-provider callbacks. It is
// deliberately ignorant of sessions and carts: the callback arrives
// out-of-band from any browser session and cannot be correlated to one
// without a persisted order record.
package webhookx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-storefront.git/internal/confirm"
)

var (
	// ErrBadSignature: the payload did not verify against the shared
	// secret. 400, never retried from this side.
	ErrBadSignature = errors.New("invalid signature")

	// ErrBadPayload: verified but unparseable, or the verification
	// mechanism itself choked on the input. Also 400.
	ErrBadPayload = errors.New("bad request")
)

// EventCheckoutCompleted is the only event type this endpoint models.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is a verified provider event.
type Event struct {
	Type string
	Data json.RawMessage
}

// Verifier is the "verify a signed event payload" capability.
type Verifier interface {
	Verify(payload []byte, sigHeader string) (Event, error)
}

// Handler verifies an inbound event and, for completed checkouts,
// invokes the confirmation capability exactly once. Event types it
// does not model are acknowledged and ignored.
type Handler struct {
	Verifier  Verifier
	Confirmer confirm.Confirmer
}

// checkoutSession mirrors the provider's checkout.session object,
// fields we extract only.
type checkoutSession struct {
	ID              string `json:"id"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	CustomerEmail   string `json:"customer_email"`
	PaymentStatus   string `json:"payment_status"`
	CustomerDetails *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// HandleEvent is the single Unverified -> Verified transition. A nil
// return means the caller must acknowledge success, whatever the event
// type, so the provider does not enter a retry storm.
func (h *Handler) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	ev, err := h.Verifier.Verify(payload, sigHeader)
	if err != nil {
		return err
	}

	if ev.Type != EventCheckoutCompleted {
		return nil
	}

	var cs checkoutSession
	if err := json.Unmarshal(ev.Data, &cs); err != nil {
		return fmt.Errorf("%w: decode checkout session: %v", ErrBadPayload, err)
	}

	email := cs.CustomerEmail
	if email == "" && cs.CustomerDetails != nil {
		email = cs.CustomerDetails.Email
	}

	return h.Confirmer.ConfirmPayment(ctx, confirm.Confirmation{
		SessionID:        cs.ID,
		AmountTotalCents: cs.AmountTotal,
		Currency:         cs.Currency,
		CustomerEmail:    email,
		PaymentStatus:    cs.PaymentStatus,
	})
}
