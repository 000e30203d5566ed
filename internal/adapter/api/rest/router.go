package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter initializes the HTTP router and registers routes.
func NewRouter(h *Handler, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /code", h.SubmitCode)

	// Wrap with middleware
	return Chain(mux, mws...)
}

// NewServerMux mounts the Prometheus endpoint next to the API router.
func NewServerMux(api http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", api)
	return mux
}
