// Package extract turns raw agent output (free text, loose bullet lists,
// or JSON blobs) into candidate store and product records. Parsing is
// best-effort by design: malformed input degrades, it never aborts.
package extract

import (
	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/normalize"
	"gorm.io/datatypes"
)

// CandidateStore is an ephemeral store record extracted from agent text.
// It lives only between extraction and upsert (or review export).
type CandidateStore struct {
	Name         string             `json:"name"`
	Platform     normalize.Platform `json:"platform"`
	AffiliateURL string             `json:"affiliate_url"`
	Description  string             `json:"description,omitempty"`
	RawFragment  string             `json:"raw_fragment,omitempty"`

	// Optional on structured input; defaults applied at upsert time.
	Active         *bool                  `json:"active,omitempty"`
	APICredentials map[string]interface{} `json:"api_credentials,omitempty"`
}

// IsActive resolves the optional active flag, defaulting to true.
func (c CandidateStore) IsActive() bool {
	return c.Active == nil || *c.Active
}

// Valid reports whether the candidate can be surfaced: both halves of the
// natural key must be present. Candidates without a resolved URL are still
// valid, they just carry PlatformUnknown and an empty AffiliateURL.
func (c CandidateStore) Valid() bool {
	return c.Name != "" && c.Platform != ""
}

// ToModel maps the candidate onto a persistable store record.
func (c CandidateStore) ToModel() models.AffiliateStore {
	creds := datatypes.JSONMap{}
	for k, v := range c.APICredentials {
		creds[k] = v
	}
	return models.AffiliateStore{
		Name:           c.Name,
		Platform:       string(c.Platform),
		AffiliateURL:   c.AffiliateURL,
		Description:    c.Description,
		APICredentials: creds,
		Active:         c.IsActive(),
	}
}

// CandidateProduct is an ephemeral product record: scraped listing fields
// plus whatever the scoring agents added on top.
type CandidateProduct struct {
	ExternalID   string   `json:"external_id,omitempty"`
	Platform     string   `json:"platform"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"sale_price,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	ProductURL   string   `json:"product_url"`
	AffiliateURL string   `json:"affiliate_url,omitempty"`
	Category     string   `json:"category,omitempty"`
	Brand        string   `json:"brand,omitempty"`

	Rank              int     `json:"rank,omitempty"`
	Score             float64 `json:"score,omitempty"`
	Strengths         string  `json:"strengths,omitempty"`
	MarketingApproach string  `json:"marketing_approach,omitempty"`
	RawScoreData      string  `json:"raw_score_data,omitempty"`

	Available bool  `json:"available"`
	Approved  *bool `json:"approved"` // nil = pending review
}

// ToModel maps the candidate onto a persistable product record.
func (c CandidateProduct) ToModel() models.Product {
	return models.Product{
		ExternalID:        c.ExternalID,
		Platform:          c.Platform,
		Title:             c.Title,
		Description:       c.Description,
		Price:             c.Price,
		SalePrice:         c.SalePrice,
		ImageURL:          c.ImageURL,
		ProductURL:        c.ProductURL,
		AffiliateURL:      c.AffiliateURL,
		Category:          c.Category,
		Brand:             c.Brand,
		Rank:              c.Rank,
		Score:             c.Score,
		Strengths:         c.Strengths,
		MarketingApproach: c.MarketingApproach,
		RawScoreData:      c.RawScoreData,
		Available:         c.Available,
		Approved:          c.Approved,
	}
}

// ProductFromModel builds a candidate from a stored product, used when
// re-scoring an existing catalog.
func ProductFromModel(p models.Product) CandidateProduct {
	return CandidateProduct{
		ExternalID:        p.ExternalID,
		Platform:          p.Platform,
		Title:             p.Title,
		Description:       p.Description,
		Price:             p.Price,
		SalePrice:         p.SalePrice,
		ImageURL:          p.ImageURL,
		ProductURL:        p.ProductURL,
		AffiliateURL:      p.AffiliateURL,
		Category:          p.Category,
		Brand:             p.Brand,
		Rank:              p.Rank,
		Score:             p.Score,
		Strengths:         p.Strengths,
		MarketingApproach: p.MarketingApproach,
		RawScoreData:      p.RawScoreData,
		Available:         p.Available,
		Approved:          p.Approved,
	}
}
