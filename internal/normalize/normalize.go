// Package normalize cleans up the loosely formatted values that come back
// from agents and scraped listings: currency strings in Brazilian or US
// notation, and platform names hidden inside URLs.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Platform identifies the e-commerce platform a store or product belongs to.
type Platform string

const (
	PlatformAmazon       Platform = "amazon"
	PlatformMercadoLivre Platform = "mercadolivre"
	PlatformMagalu       Platform = "magalu"
	PlatformAmericanas   Platform = "americanas"
	PlatformShopee       Platform = "shopee"
	PlatformAliexpress   Platform = "aliexpress"
	PlatformOther        Platform = "other"
	PlatformUnknown      Platform = "unknown"
)

// platformMarkers is matched in order; the first URL substring hit wins.
var platformMarkers = []struct {
	markers  []string
	platform Platform
}{
	{[]string{"amazon"}, PlatformAmazon},
	{[]string{"mercadolivre", "mercadolibre"}, PlatformMercadoLivre},
	{[]string{"magalu", "magazineluiza"}, PlatformMagalu},
	{[]string{"americanas"}, PlatformAmericanas},
	{[]string{"shopee"}, PlatformShopee},
	{[]string{"aliexpress"}, PlatformAliexpress},
}

// InferPlatform guesses the platform from a URL by case-insensitive
// substring match. An empty URL maps to PlatformUnknown, an URL that
// matches nothing to PlatformOther.
func InferPlatform(url string) Platform {
	if strings.TrimSpace(url) == "" {
		return PlatformUnknown
	}
	lower := strings.ToLower(url)
	for _, entry := range platformMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.platform
			}
		}
	}
	return PlatformOther
}

// thousandsDots matches values like "1.234" or "12.345.678" where the dots
// are grouping separators, not a decimal point.
var thousandsDots = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// Price converts a raw currency string ("R$ 1.234,56", "$12.34", "599,90")
// into a float. It never fails: anything unparseable comes back as 0.
func Price(raw string) float64 {
	v, ok := parsePrice(raw)
	if !ok {
		return 0
	}
	return v
}

// SalePrice is Price for optional values: unparseable input yields nil
// instead of zero, so an absent discount stays absent.
func SalePrice(raw string) *float64 {
	v, ok := parsePrice(raw)
	if !ok {
		return nil
	}
	return &v
}

// PriceValue coerces a decoded JSON value (number or string) to a price.
func PriceValue(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return Price(n)
	}
	return 0
}

// SalePriceValue coerces a decoded JSON value to an optional price.
func SalePriceValue(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case string:
		return SalePrice(n)
	}
	return nil
}

func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// Whichever separator comes last is the decimal point.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		// Brazilian notation: comma is the decimal point.
		s = strings.Replace(s, ",", ".", 1)
	case hasDot:
		if thousandsDots.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
