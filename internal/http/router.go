package http

import (
	"net/http"
	"time"

	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/shared/metrics"
	"dynamic-routing/internal/successrates"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(successRateService successrates.SuccessRateService, httpLogger loggers.Logger, requestTimeout time.Duration) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger, requestTimeout)

	// Initialize handlers
	fetchHandler := NewFetchSuccessRateHandler(successRateService)
	updateHandler := NewUpdateSuccessRateWindowHandler(successRateService)

	// Routes
	router.Route("/success-rate", func(r chi.Router) {
		r.Post("/fetch", errorHandlingAdapter(fetchHandler))
		r.Post("/update", errorHandlingAdapter(updateHandler))
	})
	router.Get("/health", errorHandlingAdapter(NewHealthHandler()))
	router.Get("/metrics", metrics.Handler().ServeHTTP)

	return router
}
