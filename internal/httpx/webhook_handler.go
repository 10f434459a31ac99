package httpx

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/ariefcatur/go-storefront.git/internal/webhookx"
	"github.com/go-chi/chi/v5"
)

// Stripe caps event payloads well under this.
const maxWebhookBody = 65536

// WebhookHandler is the machine-facing endpoint: status codes only, no
// rendered pages. The caller is the payment provider, not a browser.
type WebhookHandler struct {
	Events *webhookx.Handler
}

func (h *WebhookHandler) Register(r *chi.Mux) {
	r.Post("/webhook", h.handle)
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.Events.HandleEvent(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case errors.Is(err, webhookx.ErrBadSignature):
		http.Error(w, "invalid signature", http.StatusBadRequest)
	case errors.Is(err, webhookx.ErrBadPayload):
		http.Error(w, "bad request", http.StatusBadRequest)
	case err != nil:
		log.Printf("webhook: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		// Always ack verified events, modelled or not, to keep the
		// provider from retrying.
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}
