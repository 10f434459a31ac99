package httpx

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/ariefcatur/go-storefront.git/internal/cart"
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Each page is the layout plus its own content block.
var pages = func() map[string]*template.Template {
	names := []string{"index.html", "products.html", "cart.html", "success.html", "cancel.html"}
	m := make(map[string]*template.Template, len(names))
	for _, n := range names {
		m[n] = template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+n))
	}
	return m
}()

type pageData struct {
	CartCount int
	Flash     string

	Products  []catalog.Product
	Cart      cart.View
	SessionID string
}

func renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
