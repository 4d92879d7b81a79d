package api

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/service"
)

// NewRouter wires the REST API, the Connect SplitService and, when m is not
// nil, the Prometheus endpoint into one router.
func NewRouter(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", Health)

	r.Mount("/api/v1", NewHandler(m).Routes())

	path, handler := service.NewSplitServiceHandler(service.NewSplitService(m),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	r.Mount(path, handler)

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	return r
}
