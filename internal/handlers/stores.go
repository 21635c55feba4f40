package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DiscoverStoresRequest carries the discovery inputs. Omitted fields fall
// back to the configured defaults.
type DiscoverStoresRequest struct {
	Country string `json:"country"`
	Niche   string `json:"niche"`
	Period  string `json:"period"`
}

func (r *Router) parseDiscoverStoresRequest(req *http.Request) (DiscoverStoresRequest, error) {
	var body DiscoverStoresRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return body, fmt.Errorf("invalid request body")
	}
	if body.Country == "" {
		body.Country = r.defaults.Country
	}
	if body.Niche == "" {
		body.Niche = r.defaults.Niche
	}
	if body.Period == "" {
		body.Period = r.defaults.Period
	}
	if body.Country == "" || body.Niche == "" {
		return body, fmt.Errorf("country and niche are required")
	}
	return body, nil
}

// discoverStores runs the full discovery pipeline synchronously and
// returns the aggregated result, raw agent text included.
func (r *Router) discoverStores(w http.ResponseWriter, req *http.Request) {
	body, err := r.parseDiscoverStoresRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := r.discovery.DiscoverStores(req.Context(), body.Country, body.Niche, body.Period)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("store discovery failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "success",
		"raw_result":     result.RawResult,
		"unstructured":   result.Unstructured,
		"stores_created": len(result.Stores),
		"stores":         result.Stores,
		"errors":         result.Errors,
	})
}

// discoverStoresAsync schedules the pipeline and acknowledges
// immediately, regardless of the eventual outcome.
func (r *Router) discoverStoresAsync(w http.ResponseWriter, req *http.Request) {
	body, err := r.parseDiscoverStoresRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := r.discovery.DiscoverStoresAsync(body.Country, body.Niche, body.Period)
	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":  "processing",
		"task_id": task.ID,
		"message": fmt.Sprintf("Store discovery for %s in %s started in background.", body.Niche, body.Country),
	})
}

// listStores pages through the persisted affiliate stores.
func (r *Router) listStores(w http.ResponseWriter, req *http.Request) {
	skip, limit := pagination(req)
	stores, err := r.ingest.ListStores(skip, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stores")
		return
	}
	respondJSON(w, http.StatusOK, stores)
}
