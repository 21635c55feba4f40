package normalize

import "testing"

func TestPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"R$1.234,56", 1234.56},
		{"R$ 2.999,90", 2999.90},
		{"$12.34", 12.34},
		{"$1,234.56", 1234.56},
		{"599,90", 599.90},
		{"1.234", 1234},
		{"12.34", 12.34},
		{"100", 100},
		{"R$ 0,99", 0.99},
		{"", 0},
		{"grátis", 0},
		{"price unavailable", 0},
		{"R$", 0},
	}

	for _, c := range cases {
		if got := Price(c.raw); got != c.want {
			t.Errorf("Price(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestSalePrice(t *testing.T) {
	if got := SalePrice("R$ 49,90"); got == nil || *got != 49.90 {
		t.Errorf("SalePrice(R$ 49,90) = %v, want 49.90", got)
	}
	if got := SalePrice("sem desconto"); got != nil {
		t.Errorf("SalePrice on garbage = %v, want nil", *got)
	}
	if got := SalePrice(""); got != nil {
		t.Errorf("SalePrice on empty = %v, want nil", *got)
	}
}

func TestPriceValue(t *testing.T) {
	if got := PriceValue(2999.90); got != 2999.90 {
		t.Errorf("PriceValue(float) = %v", got)
	}
	if got := PriceValue("R$1.234,56"); got != 1234.56 {
		t.Errorf("PriceValue(string) = %v", got)
	}
	if got := PriceValue(nil); got != 0 {
		t.Errorf("PriceValue(nil) = %v", got)
	}
}

func TestInferPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://amazon.com.br/assoc", PlatformAmazon},
		{"https://www.AMAZON.com", PlatformAmazon},
		{"https://mercadolivre.com.br/afiliados", PlatformMercadoLivre},
		{"https://mercadolibre.com.ar", PlatformMercadoLivre},
		{"https://magazineluiza.com.br", PlatformMagalu},
		{"https://magalu.com.br", PlatformMagalu},
		{"https://americanas.com.br", PlatformAmericanas},
		{"https://shopee.com.br/aff", PlatformShopee},
		{"https://aliexpress.com", PlatformAliexpress},
		{"https://example.com/shop", PlatformOther},
		{"", PlatformUnknown},
		{"   ", PlatformUnknown},
	}

	for _, c := range cases {
		if got := InferPlatform(c.url); got != c.want {
			t.Errorf("InferPlatform(%q) = %s, want %s", c.url, got, c.want)
		}
	}
}

// A URL mentioning two platforms resolves to the first entry in the table.
func TestInferPlatformFirstMatchWins(t *testing.T) {
	if got := InferPlatform("https://amazon.com/vs/shopee"); got != PlatformAmazon {
		t.Errorf("got %s, want amazon", got)
	}
}
