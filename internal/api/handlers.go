package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/polymarket"
)

// forwardedParams are the only listing query parameters passed through to
// the upstream API; absent ones are omitted from the outbound query.
var forwardedParams = []string{"closed", "limit", "category", "search"}

// Handlers holds the relay handlers.
type Handlers struct {
	upstream *polymarket.Client
}

// NewHandlers creates new relay handlers.
func NewHandlers(upstream *polymarket.Client) *Handlers {
	return &Handlers{upstream: upstream}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetMarkets proxies the listing endpoint, forwarding whichever of the
// known query parameters the browser sent.
func (h *Handlers) GetMarkets(w http.ResponseWriter, r *http.Request) {
	params := url.Values{}
	query := r.URL.Query()
	for _, key := range forwardedParams {
		// Presence, not non-emptiness: an explicit ?closed= passes through.
		if query.Has(key) {
			params.Set(key, query.Get(key))
		}
	}

	body, err := h.upstream.Forward(r.Context(), "/markets", params)
	if err != nil {
		log.Error().Err(err).Msg("Proxy error")
		respondError(w, http.StatusInternalServerError, "Failed to fetch data from Polymarket API")
		return
	}

	respondRaw(w, body)
}

// GetMarket proxies the single-market endpoint.
func (h *Handlers) GetMarket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Market ID is required")
		return
	}

	body, err := h.upstream.Forward(r.Context(), "/markets/"+url.PathEscape(id), nil)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Proxy error")
		respondError(w, http.StatusInternalServerError, "Failed to load market details")
		return
	}

	respondRaw(w, body)
}

// HealthCheck returns service health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "polyview",
	})
}
