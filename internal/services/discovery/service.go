// Package discovery wires the full pipeline together: agent runs produce
// raw text, the extractors turn it into candidates, and the ingest engine
// persists whatever survives. Synchronous callers get the aggregated
// result; asynchronous callers get a task handle they can poll.
package discovery

import (
	"context"
	"fmt"
	"log"

	"github.com/affiscout/affiscout/internal/ai"
	"github.com/affiscout/affiscout/internal/extract"
	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/scraper"
	"github.com/affiscout/affiscout/internal/services/ingest"
	"github.com/affiscout/affiscout/internal/tasks"
)

// Service orchestrates discovery runs.
type Service struct {
	storeAgent   *ai.StoreDiscoveryAgent
	productAgent *ai.ProductScoringAgent
	collector    *scraper.Collector
	ingest       *ingest.Service
	tasks        *tasks.Manager
}

func NewService(storeAgent *ai.StoreDiscoveryAgent, productAgent *ai.ProductScoringAgent, collector *scraper.Collector, ing *ingest.Service, tm *tasks.Manager) *Service {
	return &Service{
		storeAgent:   storeAgent,
		productAgent: productAgent,
		collector:    collector,
		ingest:       ing,
		tasks:        tm,
	}
}

// StoreDiscoveryResult aggregates one store discovery run.
type StoreDiscoveryResult struct {
	RawResult    string                  `json:"raw_result"`
	Unstructured bool                    `json:"unstructured"`
	Stores       []models.AffiliateStore `json:"stores"`
	Errors       []ingest.RecordError    `json:"errors,omitempty"`
}

// DiscoverStores runs the store agents, extracts candidates from their
// output and upserts them. Unparseable agent output is not an error: the
// result carries the raw text flagged as unstructured so a human can
// still see what the agent said.
func (s *Service) DiscoverStores(ctx context.Context, country, niche, period string) (*StoreDiscoveryResult, error) {
	if s.storeAgent == nil {
		return nil, fmt.Errorf("store discovery agent is not configured")
	}

	raw, err := s.storeAgent.DiscoverStores(ctx, country, period, niche)
	if err != nil {
		return nil, fmt.Errorf("store discovery for %s/%s: %w", country, niche, err)
	}

	candidates := extract.Stores(raw)
	if len(candidates) == 0 {
		log.Printf("⚠️ Store discovery produced no structured candidates (%d bytes of raw text)", len(raw))
		return &StoreDiscoveryResult{RawResult: raw, Unstructured: true}, nil
	}

	stores, errs := s.ingest.BulkUpsertStores(candidates)
	log.Printf("✅ Store discovery: %d stores upserted, %d failed", len(stores), len(errs))

	return &StoreDiscoveryResult{RawResult: raw, Stores: stores, Errors: errs}, nil
}

// DiscoverStoresAsync schedules DiscoverStores in the background and
// returns the task handle right away.
func (s *Service) DiscoverStoresAsync(country, niche, period string) tasks.Task {
	return s.tasks.Submit("discover-stores", func(ctx context.Context) error {
		_, err := s.DiscoverStores(ctx, country, niche, period)
		return err
	})
}

// ProductDiscoveryResult aggregates one product discovery run.
type ProductDiscoveryResult struct {
	StoreName string               `json:"store_name"`
	RawResult string               `json:"raw_result"`
	Collected int                  `json:"collected"`
	Products  []models.Product     `json:"products"`
	Errors    []ingest.RecordError `json:"errors,omitempty"`
}

// DiscoverProducts collects the store's listings, has the scoring agents
// rank them, merges the ranking back into the collected catalog and
// persists the result linked to the store.
func (s *Service) DiscoverProducts(ctx context.Context, storeName string) (*ProductDiscoveryResult, error) {
	if s.collector == nil {
		return nil, fmt.Errorf("product collector is not configured")
	}

	store, err := s.ingest.StoreByName(storeName)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("affiliate store %q not found", storeName)
	}

	collected, err := s.collector.CollectProducts(ctx, store.Platform)
	if err != nil {
		return nil, fmt.Errorf("collect products for %q: %w", storeName, err)
	}
	if len(collected) == 0 {
		return &ProductDiscoveryResult{StoreName: storeName}, nil
	}

	raw := ""
	scored := collected
	if s.productAgent != nil {
		raw, err = s.productAgent.ScoreProducts(ctx, collected)
		if err != nil {
			// Scoring is an enrichment; losing it must not lose the catalog.
			log.Printf("⚠️ Product scoring failed for %q, storing unscored: %v", storeName, err)
		} else {
			scored = extract.ScoreProducts(raw, collected)
		}
	}

	products, errs, err := s.ingest.UpsertProductsForStore(scored, storeName)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Product discovery for %q: %d collected, %d upserted, %d failed", storeName, len(collected), len(products), len(errs))

	return &ProductDiscoveryResult{
		StoreName: storeName,
		RawResult: raw,
		Collected: len(collected),
		Products:  products,
		Errors:    errs,
	}, nil
}

// DiscoverProductsAsync schedules DiscoverProducts in the background.
func (s *Service) DiscoverProductsAsync(storeName string) tasks.Task {
	return s.tasks.Submit("discover-products", func(ctx context.Context) error {
		_, err := s.DiscoverProducts(ctx, storeName)
		return err
	})
}
