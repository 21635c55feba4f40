package models

import "time"

// Product is a catalog entry collected from a store and scored by the
// curation agents. Identified by (ExternalID, Platform) when the source
// exposes an external ID, otherwise by (Title, Platform).
type Product struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	ExternalID   string   `gorm:"index" json:"external_id"`
	Platform     string   `gorm:"index" json:"platform"`
	Title        string   `gorm:"index" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"sale_price"`
	ImageURL     string   `json:"image_url"`
	ProductURL   string   `json:"product_url"`
	AffiliateURL string   `json:"affiliate_url"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`

	// Curation output.
	Rank              int     `json:"rank"`
	Score             float64 `json:"score"`
	Strengths         string  `gorm:"type:text" json:"strengths,omitempty"`
	MarketingApproach string  `gorm:"type:text" json:"marketing_approach,omitempty"`
	RawScoreData      string  `gorm:"type:text" json:"raw_score_data,omitempty"`

	Available bool  `gorm:"default:true" json:"available"`
	Approved  *bool `json:"approved"` // nil until a human reviews it

	AffiliateStoreID *uint           `json:"affiliate_store_id"`
	AffiliateStore   *AffiliateStore `gorm:"foreignKey:AffiliateStoreID" json:"affiliate_store,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
