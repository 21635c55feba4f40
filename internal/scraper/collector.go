// Package scraper talks to the product collector service, which scrapes
// store listings and hands back semi-structured product dictionaries.
// The dictionaries are normalized into typed candidates here, so the
// rest of the pipeline never sees raw scraped values.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/affiscout/affiscout/internal/extract"
	"github.com/affiscout/affiscout/internal/normalize"
)

// Collector is an HTTP client for the collector service.
type Collector struct {
	baseURL string
	client  *http.Client
}

func NewCollector(baseURL string) *Collector {
	return &Collector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// CollectProducts fetches the scraped listings for one store platform.
func (c *Collector) CollectProducts(ctx context.Context, platform string) ([]extract.CandidateProduct, error) {
	endpoint := fmt.Sprintf("%s/products?store=%s", c.baseURL, url.QueryEscape(platform))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build collector request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("collector request for %s: %w", platform, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("collector returned %d for %s", resp.StatusCode, platform)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read collector response: %w", err)
	}

	var scraped []map[string]interface{}
	if err := json.Unmarshal(body, &scraped); err != nil {
		return nil, fmt.Errorf("decode collector response: %w", err)
	}

	products := make([]extract.CandidateProduct, 0, len(scraped))
	for _, fields := range scraped {
		products = append(products, CandidateFromScraped(fields))
	}
	return products, nil
}

// CandidateFromScraped coerces one scraped product dictionary into a
// typed candidate: prices become numbers, the platform is inferred from
// the product URL when absent, and a missing title falls back to the
// "name" key.
func CandidateFromScraped(fields map[string]interface{}) extract.CandidateProduct {
	title := str(fields["title"])
	if title == "" {
		title = str(fields["name"])
	}

	platform := str(fields["platform"])
	productURL := str(fields["product_url"])
	if platform == "" {
		platform = string(normalize.InferPlatform(productURL))
	}

	available := true
	if v, ok := fields["available"].(bool); ok {
		available = v
	}

	return extract.CandidateProduct{
		ExternalID:   str(fields["external_id"]),
		Platform:     platform,
		Title:        title,
		Description:  str(fields["description"]),
		Price:        normalize.PriceValue(fields["price"]),
		SalePrice:    normalize.SalePriceValue(fields["sale_price"]),
		ImageURL:     str(fields["image_url"]),
		ProductURL:   productURL,
		AffiliateURL: str(fields["affiliate_url"]),
		Category:     str(fields["category"]),
		Brand:        str(fields["brand"]),
		Available:    available,
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
