package cart

import (
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
)

// Item is one cart entry. Qty is always > 0 while the entry exists;
// dropping to 0 removes it.
type Item struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// Cart keeps entries in insertion order. It is plain data: catalog
// validation belongs to the caller (Add assumes the id was checked,
// SetQty deliberately accepts unknown ids as an opaque id->qty map).
type Cart struct {
	items []Item
}

func New() *Cart { return &Cart{} }

// FromItems rebuilds a cart from its persisted form, dropping any
// non-positive quantities that a stale or tampered blob might carry.
func FromItems(items []Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Qty > 0 {
			c.items = append(c.items, it)
		}
	}
	return c
}

// Items returns the persisted form: an ordered slice, so the JSON
// encoding at the session boundary preserves insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Add increments the quantity for productID, creating the entry at the
// end when absent. qty must be positive; the caller validates.
func (c *Cart) Add(productID, qty int) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Qty += qty
			return
		}
	}
	c.items = append(c.items, Item{ProductID: productID, Qty: qty})
}

// SetQty overwrites the quantity for productID, clamping at 0; zero
// removes the entry. Unknown ids are stored as-is.
func (c *Cart) SetQty(productID, qty int) {
	if qty < 0 {
		qty = 0
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			if qty == 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				c.items[i].Qty = qty
			}
			return
		}
	}
	if qty > 0 {
		c.items = append(c.items, Item{ProductID: productID, Qty: qty})
	}
}

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Count is the badge value: the sum of all quantities, including
// entries whose product no longer resolves.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Qty
	}
	return n
}

// Line is a derived cart row; never stored.
type Line struct {
	Product       catalog.Product
	Qty           int
	SubtotalCents int64
}

// View is computed fresh on every read.
type View struct {
	Lines      []Line
	TotalCents int64
}

// Resolver is the catalog lookup the view needs.
type Resolver interface {
	Get(id int) (catalog.Product, bool)
}

// View resolves each entry against the catalog. Entries whose product
// has disappeared are skipped, not erased: the id stays in the cart in
// case the product comes back.
func (c *Cart) View(res Resolver) View {
	var v View
	for _, it := range c.items {
		p, ok := res.Get(it.ProductID)
		if !ok {
			continue
		}
		sub := p.PriceCents * int64(it.Qty)
		v.Lines = append(v.Lines, Line{Product: p, Qty: it.Qty, SubtotalCents: sub})
		v.TotalCents += sub
	}
	return v
}
