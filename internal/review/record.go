// Package review handles the human review round trip: curated products go
// out as CSV or JSON batch files, reviewers fill in an approved column,
// and the files come back in as validated records.
package review

import (
	"strconv"
	"strings"

	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/normalize"
)

// columns is the fixed export column set, in file order.
var columns = []string{
	"id", "title", "description", "price", "sale_price",
	"category", "brand", "product_url", "affiliate_url",
	"image_url", "platform", "rank", "score", "approved",
}

// Record is one reviewable row. Approved is tri-state: nil means the
// reviewer has not decided yet.
type Record struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"sale_price"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	ProductURL   string   `json:"product_url"`
	AffiliateURL string   `json:"affiliate_url"`
	ImageURL     string   `json:"image_url"`
	Platform     string   `json:"platform"`
	Rank         int      `json:"rank"`
	Score        float64  `json:"score"`
	Approved     *bool    `json:"approved"`
}

// FromProduct builds the reviewable view of a stored product.
func FromProduct(p models.Product) Record {
	return Record{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		Category:     p.Category,
		Brand:        p.Brand,
		ProductURL:   p.ProductURL,
		AffiliateURL: p.AffiliateURL,
		ImageURL:     p.ImageURL,
		Platform:     p.Platform,
		Rank:         p.Rank,
		Score:        p.Score,
		Approved:     p.Approved,
	}
}

// ParseApproved coerces a reviewer-typed token to the tri-state flag.
// Anything outside the known vocabulary stays pending rather than failing
// the import.
func ParseApproved(token string) *bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true", "yes", "sim", "1", "verdadeiro":
		v := true
		return &v
	case "false", "no", "não", "nao", "0", "falso":
		v := false
		return &v
	}
	return nil
}

// formatApproved renders the tri-state flag for CSV; pending is an empty
// cell the reviewer is expected to fill.
func formatApproved(approved *bool) string {
	if approved == nil {
		return ""
	}
	return strconv.FormatBool(*approved)
}

func recordFromCSVRow(get func(string) string) Record {
	rec := Record{
		Title:        get("title"),
		Description:  get("description"),
		Category:     get("category"),
		Brand:        get("brand"),
		ProductURL:   get("product_url"),
		AffiliateURL: get("affiliate_url"),
		ImageURL:     get("image_url"),
		Platform:     get("platform"),
		Approved:     ParseApproved(get("approved")),
	}

	if id, err := strconv.ParseUint(get("id"), 10, 64); err == nil {
		rec.ID = uint(id)
	}
	if rank, err := strconv.Atoi(get("rank")); err == nil {
		rec.Rank = rank
	}
	// Plain float cells (the usual case: our own exports) parse as-is;
	// the currency normalizer only handles reviewer-typed values like
	// "R$ 1.234,56", and failures there degrade to the safe default
	// instead of rejecting the row.
	if price, err := strconv.ParseFloat(strings.TrimSpace(get("price")), 64); err == nil {
		rec.Price = price
	} else {
		rec.Price = normalize.Price(get("price"))
	}
	if sale, err := strconv.ParseFloat(strings.TrimSpace(get("sale_price")), 64); err == nil {
		rec.SalePrice = &sale
	} else {
		rec.SalePrice = normalize.SalePrice(get("sale_price"))
	}
	if score, err := strconv.ParseFloat(strings.TrimSpace(get("score")), 64); err == nil {
		rec.Score = score
	}
	return rec
}
