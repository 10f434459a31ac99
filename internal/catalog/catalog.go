package catalog

// Product is immutable for the process lifetime. PriceCents is in the
// minor currency unit. StripePriceID is optional; products without one
// are sent to Checkout with inline price data.
type Product struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	ImageURL      string `json:"image_url"`
	StripePriceID string `json:"stripe_price_id,omitempty"`
}

// Catalog is a fixed, ordered product list. It is built once at startup
// and never mutated, so it is safe to share across requests.
type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...)}
}

// Seed returns the built-in catalog, used when no POSTGRES_DSN is set.
func Seed() *Catalog {
	return New([]Product{
		{ID: 1, Name: "T-Shirt", PriceCents: 2500, ImageURL: "https://via.placeholder.com/300x200?text=T-Shirt"},
		{ID: 2, Name: "Mug", PriceCents: 1200, ImageURL: "https://via.placeholder.com/300x200?text=Mug"},
		{ID: 3, Name: "Cap", PriceCents: 1800, ImageURL: "https://via.placeholder.com/300x200?text=Cap"},
	})
}

// Get does a linear scan; the catalog is tiny.
func (c *Catalog) Get(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (c *Catalog) Products() []Product {
	return c.products
}

func (c *Catalog) Len() int { return len(c.products) }
