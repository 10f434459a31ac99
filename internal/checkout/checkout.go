package checkout

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-storefront.git/internal/cart"
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
)

// ErrEmptyCart rejects checkout before any provider call is made. A
// cart whose every entry is stale counts as empty: it resolves to zero
// line items and the provider would refuse it anyway.
var ErrEmptyCart = errors.New("cart is empty")

// LineItem is one entry of a checkout request. Either PriceID is set
// (product pre-registered with the provider) or the inline price
// fields are.
type LineItem struct {
	PriceID string

	Name            string
	Currency        string
	UnitAmountCents int64

	Qty int64
}

// Session is the provider's pending-payment object.
type Session struct {
	ID  string
	URL string
}

// Provider is the "create a hosted payment session" capability.
type Provider interface {
	CreateSession(ctx context.Context, items []LineItem) (*Session, error)
}

// Orchestrator turns a cart into a hosted payment session.
type Orchestrator struct {
	Catalog  *catalog.Catalog
	Provider Provider
	Currency string
}

// Create returns the provider redirect URL for the cart's contents.
// Stale entries are skipped the same way the cart view skips them.
// Provider failures propagate as-is; no retry at this layer.
func (o *Orchestrator) Create(ctx context.Context, c *cart.Cart) (string, error) {
	if c.Empty() {
		return "", ErrEmptyCart
	}

	items := o.buildLineItems(c)
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	s, err := o.Provider.CreateSession(ctx, items)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (o *Orchestrator) buildLineItems(c *cart.Cart) []LineItem {
	v := c.View(o.Catalog)
	items := make([]LineItem, 0, len(v.Lines))
	for _, ln := range v.Lines {
		li := LineItem{Qty: int64(ln.Qty)}
		if ln.Product.StripePriceID != "" {
			li.PriceID = ln.Product.StripePriceID
		} else {
			// Not registered with the provider: carry the price inline.
			li.Name = ln.Product.Name
			li.Currency = o.Currency
			li.UnitAmountCents = ln.Product.PriceCents
		}
		items = append(items, li)
	}
	return items
}
