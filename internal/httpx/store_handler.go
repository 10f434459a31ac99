package httpx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ariefcatur/go-storefront.git/internal/cart"
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
	"github.com/ariefcatur/go-storefront.git/internal/checkout"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// StoreHandler serves the browser-facing storefront. Everything it
// needs is injected; there is no ambient state besides the immutable
// catalog shared across requests.
type StoreHandler struct {
	Catalog  *catalog.Catalog
	Carts    cart.Store
	Checkout *checkout.Orchestrator
	Sessions *session.Codec
	Redis    *redis.Client // flash messages
}

func (h *StoreHandler) Register(r *chi.Mux) {
	r.Get("/", h.home)
	r.Get("/products", h.products)
	r.Post("/add-to-cart/{productID}", h.addToCart)
	r.Get("/cart", h.cartView)
	r.Post("/cart/update/{productID}", h.cartUpdate)
	r.Post("/cart/clear", h.cartClear)
	r.Post("/checkout", h.checkout)
	r.Get("/success", h.success)
	r.Get("/cancel", h.cancel)
}

// sessionID returns the visitor's session id, issuing a fresh one (and
// cookie) when the request carries none or a tampered one.
func (h *StoreHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if sid, ok := h.Sessions.FromRequest(r); ok {
		return sid
	}
	sid := h.Sessions.Issue()
	h.Sessions.SetCookie(w, sid)
	return sid
}

func (h *StoreHandler) setFlash(ctx context.Context, sid, msg string) {
	_ = h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyFlash, sid), msg, redisx.TTLFlash).Err()
}

func (h *StoreHandler) popFlash(ctx context.Context, sid string) string {
	msg, _ := h.Redis.GetDel(ctx, fmt.Sprintf(redisx.KeyFlash, sid)).Result()
	return msg
}

// page assembles the data every rendered view carries: cart badge and
// any pending flash message.
func (h *StoreHandler) page(ctx context.Context, sid string) pageData {
	d := pageData{Flash: h.popFlash(ctx, sid)}
	if c, err := h.Carts.Load(ctx, sid); err == nil {
		d.CartCount = c.Count()
	}
	return d
}

func (h *StoreHandler) home(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	renderPage(w, "index.html", h.page(r.Context(), sid))
}

func (h *StoreHandler) products(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	d := h.page(r.Context(), sid)
	d.Products = h.Catalog.Products()
	renderPage(w, "products.html", d)
}

func (h *StoreHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	pid, _ := strconv.Atoi(chi.URLParam(r, "productID"))
	qty, qtyOK := formQty(r)

	p, found := h.Catalog.Get(pid)
	if !found || !qtyOK || qty <= 0 {
		h.setFlash(r.Context(), sid, "Product not found or invalid quantity.")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	c, err := h.Carts.Load(r.Context(), sid)
	if err != nil {
		h.fail(w, "load cart", err)
		return
	}
	c.Add(pid, qty)
	if err := h.Carts.Save(r.Context(), sid, c); err != nil {
		h.fail(w, "save cart", err)
		return
	}

	h.setFlash(r.Context(), sid, fmt.Sprintf("Added %d × %s to your cart.", qty, p.Name))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *StoreHandler) cartView(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	c, err := h.Carts.Load(r.Context(), sid)
	if err != nil {
		h.fail(w, "load cart", err)
		return
	}
	d := h.page(r.Context(), sid)
	d.Cart = c.View(h.Catalog)
	renderPage(w, "cart.html", d)
}

// cartUpdate accepts ids the catalog does not know: the cart is an
// opaque id->qty map here, unlike addToCart which validates. The
// asymmetry is inherited behavior, kept until product says otherwise.
func (h *StoreHandler) cartUpdate(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	pid, _ := strconv.Atoi(chi.URLParam(r, "productID"))

	if qty, ok := formQty(r); ok {
		c, err := h.Carts.Load(r.Context(), sid)
		if err != nil {
			h.fail(w, "load cart", err)
			return
		}
		c.SetQty(pid, qty)
		if err := h.Carts.Save(r.Context(), sid, c); err != nil {
			h.fail(w, "save cart", err)
			return
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *StoreHandler) cartClear(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	if err := h.Carts.Save(r.Context(), sid, cart.New()); err != nil {
		h.fail(w, "clear cart", err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *StoreHandler) checkout(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	c, err := h.Carts.Load(r.Context(), sid)
	if err != nil {
		h.fail(w, "load cart", err)
		return
	}

	url, err := h.Checkout.Create(r.Context(), c)
	if errors.Is(err, checkout.ErrEmptyCart) {
		h.setFlash(r.Context(), sid, "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, "create checkout", err)
		return
	}

	// 303 so back/refresh after the redirect cannot re-POST.
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *StoreHandler) success(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	d := h.page(r.Context(), sid)
	d.SessionID = r.URL.Query().Get("session_id")
	renderPage(w, "success.html", d)
}

func (h *StoreHandler) cancel(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	renderPage(w, "cancel.html", h.page(r.Context(), sid))
}

func (h *StoreHandler) fail(w http.ResponseWriter, what string, err error) {
	log.Printf("%s: %v", what, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// formQty reads the qty form field, defaulting to 1 when absent.
func formQty(r *http.Request) (int, bool) {
	v := r.FormValue("qty")
	if v == "" {
		return 1, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
