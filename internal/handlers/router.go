package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/affiscout/affiscout/internal/services/discovery"
	"github.com/affiscout/affiscout/internal/services/ingest"
	"github.com/affiscout/affiscout/internal/tasks"
	"github.com/gorilla/mux"
)

// DiscoveryDefaults fill in omitted store discovery request fields.
type DiscoveryDefaults struct {
	Country string
	Niche   string
	Period  string
}

// ReviewSettings carry the configured review batch directory and the
// default batch size used when an export request does not set one.
type ReviewSettings struct {
	Dir          string
	MaxBatchSize int
}

// Router wraps the mux router and the services the handlers call into.
type Router struct {
	*mux.Router
	discovery *discovery.Service
	ingest    *ingest.Service
	tasks     *tasks.Manager
	review    ReviewSettings
	defaults  DiscoveryDefaults
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(disc *discovery.Service, ing *ingest.Service, tm *tasks.Manager, rev ReviewSettings, defaults DiscoveryDefaults) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		discovery: disc,
		ingest:    ing,
		tasks:     tm,
		review:    rev,
		defaults:  defaults,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Store discovery routes
	stores := r.PathPrefix("/api/stores").Subrouter()
	stores.HandleFunc("/discover", r.discoverStores).Methods("POST")
	stores.HandleFunc("/discover-async", r.discoverStoresAsync).Methods("POST")
	stores.HandleFunc("/list", r.listStores).Methods("GET")

	// Product discovery routes
	products := r.PathPrefix("/api/products").Subrouter()
	products.HandleFunc("/discover", r.discoverProducts).Methods("POST")
	products.HandleFunc("/discover-async", r.discoverProductsAsync).Methods("POST")
	products.HandleFunc("/list", r.listProducts).Methods("GET")

	// Human review round trip
	reviewRoutes := r.PathPrefix("/api/review").Subrouter()
	reviewRoutes.HandleFunc("/export", r.exportReviewBatch).Methods("POST")
	reviewRoutes.HandleFunc("/import", r.importReviewBatch).Methods("POST")
	reviewRoutes.HandleFunc("/latest", r.latestReviewBatch).Methods("GET")

	// Background task observation
	r.HandleFunc("/api/tasks", r.listTasks).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", r.getTask).Methods("GET")

	return r
}

// Handler returns the root handler for the HTTP server.
func (r *Router) Handler() http.Handler { return r.Router }

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
