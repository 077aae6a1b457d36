// Package httpapi mounts the operational HTTP endpoints served
// alongside the SSE transport.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arlevan/deckhand"
)

// Mount attaches the health, version and metrics endpoints to the router.
func Mount(r chi.Router) {
	r.Get("/healthz", handleHealth)
	r.Get("/version", handleVersion)
	r.Handle("/metrics", promhttp.Handler())
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"name":    "deckhand",
		"version": deckhand.Version,
	}); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
