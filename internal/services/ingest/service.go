// Package ingest is the upsert engine: it takes candidate records from the
// extractors (or the review round trip) and persists them by natural key.
// Existing records are overwritten wholesale, never merged field by field.
package ingest

import (
	"fmt"
	"log"

	"github.com/affiscout/affiscout/internal/extract"
	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/normalize"
	"github.com/affiscout/affiscout/internal/repository"
	"github.com/affiscout/affiscout/internal/review"
)

// untitledPlaceholder keeps the non-empty-title invariant when a scraped
// listing arrives without one.
const untitledPlaceholder = "Produto sem título"

// RecordError ties a failed candidate to its position in the batch.
type RecordError struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Service implements the upsert policy over an injected Repository.
type Service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// UpsertStore inserts or updates a store by (name, platform). On update
// every mutable field takes the candidate's value, including the active
// flag and credentials.
func (s *Service) UpsertStore(c extract.CandidateStore) (*models.AffiliateStore, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("store candidate missing name or platform: %+v", c)
	}

	existing, err := s.repo.FindStoreByNaturalKey(c.Name, string(c.Platform))
	if err != nil {
		return nil, err
	}

	if existing == nil {
		record := c.ToModel()
		if err := s.repo.InsertStore(&record); err != nil {
			return nil, err
		}
		return &record, nil
	}

	replacement := c.ToModel()
	existing.AffiliateURL = replacement.AffiliateURL
	existing.Description = replacement.Description
	existing.Active = replacement.Active
	existing.APICredentials = replacement.APICredentials
	if err := s.repo.UpdateStore(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// BulkUpsertStores processes candidates sequentially. Each record commits
// on its own; a failure is recorded and the rest of the batch continues.
func (s *Service) BulkUpsertStores(candidates []extract.CandidateStore) ([]models.AffiliateStore, []RecordError) {
	var stores []models.AffiliateStore
	var errs []RecordError

	for i, c := range candidates {
		store, err := s.UpsertStore(c)
		if err != nil {
			log.Printf("⚠️ Store upsert failed (%d, %q): %v", i, c.Name, err)
			errs = append(errs, RecordError{Index: i, Name: c.Name, Error: err.Error()})
			continue
		}
		stores = append(stores, *store)
	}
	return stores, errs
}

// UpsertProduct inserts or updates a product by (external_id, platform),
// falling back to (title, platform). storeID, when present, links the
// product to its affiliate store.
func (s *Service) UpsertProduct(c extract.CandidateProduct, storeID *uint) (*models.Product, error) {
	c = normalizeCandidate(c)

	existing, err := s.repo.FindProductByNaturalKey(c.ExternalID, c.Title, c.Platform)
	if err != nil {
		return nil, err
	}

	record := c.ToModel()
	if storeID != nil {
		record.AffiliateStoreID = storeID
	}

	if existing == nil {
		if err := s.repo.InsertProduct(&record); err != nil {
			return nil, err
		}
		return &record, nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if record.AffiliateStoreID == nil {
		record.AffiliateStoreID = existing.AffiliateStoreID
	}
	if err := s.repo.UpdateProduct(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// BulkUpsertProducts is the batch variant; same per-record isolation as
// BulkUpsertStores.
func (s *Service) BulkUpsertProducts(candidates []extract.CandidateProduct, storeID *uint) ([]models.Product, []RecordError) {
	var products []models.Product
	var errs []RecordError

	for i, c := range candidates {
		product, err := s.UpsertProduct(c, storeID)
		if err != nil {
			log.Printf("⚠️ Product upsert failed (%d, %q): %v", i, c.Title, err)
			errs = append(errs, RecordError{Index: i, Name: c.Title, Error: err.Error()})
			continue
		}
		products = append(products, *product)
	}
	return products, errs
}

// UpsertProductsForStore resolves the affiliate store by name before the
// batch runs, so the products end up linked to it. An unknown store name
// is not an error: the products are stored unlinked.
func (s *Service) UpsertProductsForStore(candidates []extract.CandidateProduct, storeName string) ([]models.Product, []RecordError, error) {
	var storeID *uint
	if storeName != "" {
		store, err := s.repo.FindStoreByName(storeName)
		if err != nil {
			return nil, nil, err
		}
		if store != nil {
			storeID = &store.ID
		} else {
			log.Printf("⚠️ Store %q not found, products will be stored unlinked", storeName)
		}
	}

	products, errs := s.BulkUpsertProducts(candidates, storeID)
	return products, errs, nil
}

// StoreByName exposes the lookup the discovery orchestration needs.
func (s *Service) StoreByName(name string) (*models.AffiliateStore, error) {
	return s.repo.FindStoreByName(name)
}

// ListStores pages through persisted stores.
func (s *Service) ListStores(skip, limit int) ([]models.AffiliateStore, error) {
	return s.repo.ListStores(skip, limit)
}

// ListProducts pages through persisted products, optionally only approved
// ones.
func (s *Service) ListProducts(skip, limit int, onlyApproved bool) ([]models.Product, error) {
	return s.repo.ListProducts(skip, limit, onlyApproved)
}

// ApplyReview writes reviewed approval decisions back onto the stored
// products. Records without an ID (or pointing at a product that no
// longer exists) are skipped and reported, not fatal.
func (s *Service) ApplyReview(records []review.Record) (int, []RecordError) {
	applied := 0
	var errs []RecordError

	for i, rec := range records {
		if rec.ID == 0 {
			continue
		}
		product, err := s.repo.FindProductByID(rec.ID)
		if err != nil {
			errs = append(errs, RecordError{Index: i, Name: rec.Title, Error: err.Error()})
			continue
		}
		if product == nil {
			errs = append(errs, RecordError{Index: i, Name: rec.Title, Error: fmt.Sprintf("product %d not found", rec.ID)})
			continue
		}
		product.Approved = rec.Approved
		if err := s.repo.UpdateProduct(product); err != nil {
			errs = append(errs, RecordError{Index: i, Name: rec.Title, Error: err.Error()})
			continue
		}
		applied++
	}
	return applied, errs
}

// normalizeCandidate enforces the invariants every stored product must
// hold: a non-empty title, a numeric price and a platform.
func normalizeCandidate(c extract.CandidateProduct) extract.CandidateProduct {
	if c.Title == "" {
		c.Title = untitledPlaceholder
	}
	if c.Platform == "" {
		c.Platform = string(normalize.InferPlatform(c.ProductURL))
	}
	return c
}
