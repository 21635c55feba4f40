package extract

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/affiscout/affiscout/internal/normalize"
)

func TestStoresNumberedList(t *testing.T) {
	raw := "1. Amazon Brasil - https://amazon.com.br/assoc.\n2. Shopee - https://shopee.com.br/aff"

	stores := Stores(raw)
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}

	if stores[0].Name != "Amazon Brasil" {
		t.Errorf("name = %q", stores[0].Name)
	}
	if stores[0].Platform != normalize.PlatformAmazon {
		t.Errorf("platform = %s", stores[0].Platform)
	}
	if stores[0].AffiliateURL != "https://amazon.com.br/assoc" {
		t.Errorf("url = %q, trailing period should be trimmed", stores[0].AffiliateURL)
	}

	if stores[1].Name != "Shopee" || stores[1].Platform != normalize.PlatformShopee {
		t.Errorf("second store = %+v", stores[1])
	}
	if stores[1].AffiliateURL != "https://shopee.com.br/aff" {
		t.Errorf("second url = %q", stores[1].AffiliateURL)
	}
}

func TestStoresBulletsWithSeparateURLLines(t *testing.T) {
	raw := `Here are the best partners I found:

* Mercado Livre
  The biggest marketplace in Latin America.
  Affiliate program: https://mercadolivre.com.br/afiliados
- Magazine Luiza
  Strong in home appliances.
  https://magazineluiza.com.br/parceiro`

	stores := Stores(raw)
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d: %+v", len(stores), stores)
	}

	if stores[0].Name != "Mercado Livre" || stores[0].Platform != normalize.PlatformMercadoLivre {
		t.Errorf("first store = %+v", stores[0])
	}
	if stores[0].Description == "" {
		t.Error("expected prose lines to accumulate into the description")
	}
	if stores[1].Platform != normalize.PlatformMagalu {
		t.Errorf("second platform = %s", stores[1].Platform)
	}
}

func TestStoresWithoutURLStayUnknown(t *testing.T) {
	raw := "1. Loja do Zé - a great local store\n2. Amazon - https://amazon.com.br"

	stores := Stores(raw)
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}
	if stores[0].Platform != normalize.PlatformUnknown {
		t.Errorf("URL-less candidate platform = %s, want unknown", stores[0].Platform)
	}
	if stores[0].AffiliateURL != "" {
		t.Errorf("URL-less candidate url = %q, want empty", stores[0].AffiliateURL)
	}
}

// The platform comes from the first URL a block resolved; later URL
// lines replace the affiliate link but never reassign the platform.
func TestStoresFirstURLPlatformWins(t *testing.T) {
	raw := `1. Amazon Brasil - https://amazon.com.br/assoc
   Mirror: https://shopee.com.br/not-really`

	stores := Stores(raw)
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	if stores[0].Platform != normalize.PlatformAmazon {
		t.Errorf("platform = %s, want amazon from the first URL", stores[0].Platform)
	}
	if stores[0].AffiliateURL != "https://shopee.com.br/not-really" {
		t.Errorf("url = %q, later URL should still update the link", stores[0].AffiliateURL)
	}
}

func TestStoresDegenerateInput(t *testing.T) {
	for _, raw := range []string{"", "no markers anywhere in this text", "just\nprose\nlines"} {
		if stores := Stores(raw); len(stores) != 0 {
			t.Errorf("Stores(%q) = %+v, want empty", raw, stores)
		}
	}
}

func TestStoresJSONFastPath(t *testing.T) {
	raw := "```json\n[{\"name\": \"Amazon Brasil\", \"affiliate_url\": \"https://amazon.com.br/assoc\"}]\n```"

	stores := Stores(raw)
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	if stores[0].Platform != normalize.PlatformAmazon {
		t.Errorf("platform should be inferred on the JSON path, got %s", stores[0].Platform)
	}
}

// Feeding the extractor's own JSON rendering back in must reproduce the
// same set.
func TestStoresIdempotentOnOwnOutput(t *testing.T) {
	raw := "1. Amazon Brasil - https://amazon.com.br/assoc\n2. Shopee - https://shopee.com.br/aff"
	first := Stores(raw)

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	second := Stores(string(encoded))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed the set:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestStoresNamelessJSONEntriesFiltered(t *testing.T) {
	raw := `[{"name": "", "affiliate_url": "https://shopee.com.br"}, {"name": "Shopee", "affiliate_url": "https://shopee.com.br"}]`

	stores := Stores(raw)
	if len(stores) != 1 || stores[0].Name != "Shopee" {
		t.Fatalf("got %+v, want only the named entry", stores)
	}
}
