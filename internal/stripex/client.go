// Package stripex adapts Stripe's hosted Checkout and webhook signing
// to the storefront's provider capabilities.
package stripex

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-storefront.git/internal/checkout"
	"github.com/ariefcatur/go-storefront.git/internal/webhookx"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

type Client struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

// New configures the global Stripe key and the callback URLs. The
// success URL carries Stripe's session placeholder so /success can
// echo the session id back to the customer.
func New(apiKey, webhookSecret, baseURL string) *Client {
	stripe.Key = apiKey
	return &Client{
		webhookSecret: webhookSecret,
		successURL:    baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     baseURL + "/cancel",
	}
}

// CreateSession implements checkout.Provider: one-time payment mode,
// line items by price reference or inline price data.
func (c *Client) CreateSession(ctx context.Context, items []checkout.LineItem) (*checkout.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx

	for _, it := range items {
		li := &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(it.Qty),
		}
		if it.PriceID != "" {
			li.Price = stripe.String(it.PriceID)
		} else {
			li.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(it.Currency),
				UnitAmount: stripe.Int64(it.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
			}
		}
		params.LineItems = append(params.LineItems, li)
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &checkout.Session{ID: s.ID, URL: s.URL}, nil
}

// Verify implements webhookx.Verifier over the raw payload. The API
// version check is skipped: the dashboard's webhook version is not
// pinned to the SDK's.
func (c *Client) Verify(payload []byte, sigHeader string) (webhookx.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if isSignatureErr(err) {
			return webhookx.Event{}, fmt.Errorf("%w: %v", webhookx.ErrBadSignature, err)
		}
		return webhookx.Event{}, fmt.Errorf("%w: %v", webhookx.ErrBadPayload, err)
	}
	return webhookx.Event{Type: string(ev.Type), Data: ev.Data.Raw}, nil
}

func isSignatureErr(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrTooOld)
}
