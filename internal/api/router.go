package api

import (
	"net/http"

	"route-resilience-service/internal/api/handlers"
	"route-resilience-service/internal/metrics"
	"route-resilience-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(pipeline *services.Pipeline) http.Handler {
	mux := http.NewServeMux()

	analyzeHandler := &handlers.AnalyzeHandler{Pipeline: pipeline}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/analyze", analyzeHandler.Analyze)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux)
}
