package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// DiscoverProductsRequest names the store whose catalog to collect and
// score.
type DiscoverProductsRequest struct {
	StoreName string `json:"store_name"`
}

func parseDiscoverProductsRequest(req *http.Request) (DiscoverProductsRequest, error) {
	var body DiscoverProductsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return body, fmt.Errorf("invalid request body")
	}
	if body.StoreName == "" {
		return body, fmt.Errorf("store_name is required")
	}
	return body, nil
}

func (r *Router) discoverProducts(w http.ResponseWriter, req *http.Request) {
	body, err := parseDiscoverProductsRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := r.discovery.DiscoverProducts(req.Context(), body.StoreName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("product discovery failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (r *Router) discoverProductsAsync(w http.ResponseWriter, req *http.Request) {
	body, err := parseDiscoverProductsRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := r.discovery.DiscoverProductsAsync(body.StoreName)
	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":  "processing",
		"task_id": task.ID,
		"message": fmt.Sprintf("Product discovery for %q started in background.", body.StoreName),
	})
}

// listProducts pages through persisted products; ?approved=true narrows
// to human-approved ones.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	skip, limit := pagination(req)
	onlyApproved := req.URL.Query().Get("approved") == "true"

	products, err := r.ingest.ListProducts(skip, limit, onlyApproved)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// pagination reads skip/limit query params with the usual defaults.
func pagination(req *http.Request) (skip, limit int) {
	limit = 100
	if v, err := strconv.Atoi(req.URL.Query().Get("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(req.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	return skip, limit
}
