package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/go-storefront.git/internal/cart"
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerMock struct {
	calls int
	items []LineItem
	err   error
}

func (p *providerMock) CreateSession(_ context.Context, items []LineItem) (*Session, error) {
	p.calls++
	p.items = items
	if p.err != nil {
		return nil, p.err
	}
	return &Session{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
}

func newOrchestrator(p Provider) *Orchestrator {
	return &Orchestrator{
		Catalog: catalog.New([]catalog.Product{
			{ID: 1, Name: "T-Shirt", PriceCents: 2500},
			{ID: 2, Name: "Mug", PriceCents: 1200, StripePriceID: "price_mug"},
		}),
		Provider: p,
		Currency: "jpy",
	}
}

func TestCreateEmptyCartNeverCallsProvider(t *testing.T) {
	p := &providerMock{}
	o := newOrchestrator(p)

	_, err := o.Create(context.Background(), cart.New())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, p.calls)
}

func TestCreateAllStaleCartRejected(t *testing.T) {
	p := &providerMock{}
	o := newOrchestrator(p)

	c := cart.New()
	c.Add(99, 2) // not in the catalog anymore

	_, err := o.Create(context.Background(), c)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, p.calls)
}

func TestCreateBuildsLineItems(t *testing.T) {
	p := &providerMock{}
	o := newOrchestrator(p)

	c := cart.New()
	c.Add(1, 2) // inline price data
	c.Add(2, 1) // pre-registered price id

	url, err := o.Create(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_test_1", url)

	require.Equal(t, 1, p.calls)
	require.Len(t, p.items, 2)

	assert.Equal(t, LineItem{
		Name:            "T-Shirt",
		Currency:        "jpy",
		UnitAmountCents: 2500,
		Qty:             2,
	}, p.items[0])
	assert.Equal(t, LineItem{PriceID: "price_mug", Qty: 1}, p.items[1])
}

func TestCreateSkipsStaleEntries(t *testing.T) {
	p := &providerMock{}
	o := newOrchestrator(p)

	c := cart.New()
	c.Add(1, 1)
	c.Add(77, 4) // stale

	_, err := o.Create(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, p.items, 1)
	assert.Equal(t, "T-Shirt", p.items[0].Name)
}

func TestCreatePropagatesProviderError(t *testing.T) {
	boom := errors.New("stripe: rate limited")
	p := &providerMock{err: boom}
	o := newOrchestrator(p)

	c := cart.New()
	c.Add(1, 1)

	_, err := o.Create(context.Background(), c)
	assert.ErrorIs(t, err, boom)
}
