package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chem-calc-api/internal/chem"
	"chem-calc-api/internal/handlers"
	"chem-calc-api/internal/observability"
)

func NewRouter() http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	chem.RegisterRoutes(r)

	return r
}
