package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/affiscout/affiscout/internal/review"
	"github.com/gorilla/mux"
)

// ExportReviewRequest tunes a review batch export.
type ExportReviewRequest struct {
	Format       string `json:"format"`
	MaxBatchSize int    `json:"max_batch_size"`
	BatchName    string `json:"batch_name"`
}

// exportReviewBatch dumps the current product catalog into review batch
// files under the configured review directory.
func (r *Router) exportReviewBatch(w http.ResponseWriter, req *http.Request) {
	var body ExportReviewRequest
	if req.Body != nil {
		// An empty body means defaults; a malformed one is still a client error.
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	products, err := r.ingest.ListProducts(0, 10000, false)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	records := make([]review.Record, 0, len(products))
	for _, p := range products {
		records = append(records, review.FromProduct(p))
	}

	if body.MaxBatchSize <= 0 {
		body.MaxBatchSize = r.review.MaxBatchSize
	}

	paths, err := review.Export(records, review.ExportOptions{
		Format:       review.Format(body.Format),
		OutputDir:    r.review.Dir,
		BatchName:    body.BatchName,
		MaxBatchSize: body.MaxBatchSize,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"batches": paths,
		"records": len(records),
	})
}

// ImportReviewRequest selects which reviewed files to read back.
type ImportReviewRequest struct {
	Paths        []string `json:"paths"`
	OnlyApproved bool     `json:"only_approved"`
	Apply        bool     `json:"apply"`
}

// importReviewBatch reads reviewed batch files (explicit paths, or the
// whole review directory) and optionally applies the approval decisions
// back onto the stored products.
func (r *Router) importReviewBatch(w http.ResponseWriter, req *http.Request) {
	var body ImportReviewRequest
	if req.Body != nil {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var records []review.Record
	if len(body.Paths) > 0 {
		records = review.ImportFiles(body.Paths, body.OnlyApproved)
	} else {
		records = review.ImportDir(r.review.Dir, body.OnlyApproved)
	}

	response := map[string]interface{}{
		"status":  "success",
		"records": records,
		"count":   len(records),
	}

	if body.Apply {
		applied, errs := r.ingest.ApplyReview(records)
		response["applied"] = applied
		response["errors"] = errs
	}

	respondJSON(w, http.StatusOK, response)
}

// latestReviewBatch points the reviewer at the most recent batch file.
func (r *Router) latestReviewBatch(w http.ResponseWriter, req *http.Request) {
	latest := review.LatestBatch(r.review.Dir)
	if latest == "" {
		respondJSON(w, http.StatusOK, map[string]interface{}{"latest": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"latest": latest})
}

// getTask reports one background task's status.
func (r *Router) getTask(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	task, ok := r.tasks.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// listTasks reports every background task, newest first.
func (r *Router) listTasks(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.tasks.List())
}
