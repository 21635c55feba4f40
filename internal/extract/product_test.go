package extract

import (
	"strings"
	"testing"
)

func knownCatalog() []CandidateProduct {
	return []CandidateProduct{
		{Title: "Smartphone XYZ Pro", Price: 2999.90, Platform: "amazon", Available: true},
		{Title: "Notebook ABC Ultra", Price: 5499.90, Platform: "amazon", Available: true},
		{Title: "Fone de Ouvido QWE Noise", Price: 599.90, Platform: "shopee", Available: true},
	}
}

func TestScoreProductsMerge(t *testing.T) {
	raw := `2. Notebook ABC Ultra
   Overall score: 8.7
   Key strengths: premium build, strong brand
   Recommended marketing approach: comparison videos
1. Smartphone XYZ Pro
   Overall score: 9.5
   Key strengths: camera quality
   Recommended marketing approach: influencer reviews`

	scored := ScoreProducts(raw, knownCatalog())
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored products, got %d", len(scored))
	}

	// Sorted ascending by rank.
	if scored[0].Title != "Smartphone XYZ Pro" || scored[0].Rank != 1 {
		t.Errorf("first = %q rank %d", scored[0].Title, scored[0].Rank)
	}
	if scored[0].Score != 9.5 {
		t.Errorf("score = %v, want 9.5", scored[0].Score)
	}
	if scored[0].Strengths != "camera quality" {
		t.Errorf("strengths = %q", scored[0].Strengths)
	}
	if scored[1].Score != 8.7 || scored[1].MarketingApproach != "comparison videos" {
		t.Errorf("second = %+v", scored[1])
	}

	// Catalog fields survive the merge.
	if scored[0].Price != 2999.90 || scored[0].Platform != "amazon" {
		t.Errorf("catalog fields lost: %+v", scored[0])
	}
}

func TestScoreProductsDropsUnmatchedBlocks(t *testing.T) {
	raw := `1. Smartphone XYZ Pro
   Overall score: 9.5
2. Produto Inventado Pela IA
   Overall score: 9.9`

	scored := ScoreProducts(raw, knownCatalog())
	if len(scored) != 1 {
		t.Fatalf("expected hallucinated block to be dropped, got %d products", len(scored))
	}
	if scored[0].Title != "Smartphone XYZ Pro" {
		t.Errorf("kept %q", scored[0].Title)
	}
}

func TestScoreProductsZeroMatchesPassthrough(t *testing.T) {
	raw := "The agent rambled and produced nothing usable."

	known := knownCatalog()
	scored := ScoreProducts(raw, known)
	if len(scored) != len(known) {
		t.Fatalf("expected full passthrough, got %d of %d", len(scored), len(known))
	}
	for i, p := range scored {
		if p.Rank != i+1 {
			t.Errorf("passthrough rank[%d] = %d", i, p.Rank)
		}
		if p.RawScoreData != raw {
			t.Errorf("raw text not attached to %q", p.Title)
		}
		if p.Score != 0 {
			t.Errorf("passthrough should be unscored, got %v", p.Score)
		}
	}
}

func TestScoreProductsRankAndScoreDefaults(t *testing.T) {
	raw := `* Smartphone XYZ Pro
   Overall score: excellent`

	scored := ScoreProducts(raw, knownCatalog())
	if len(scored) != 1 {
		t.Fatalf("got %d products", len(scored))
	}
	if scored[0].Rank != defaultRank {
		t.Errorf("bullet entry rank = %d, want %d", scored[0].Rank, defaultRank)
	}
	if scored[0].Score != 0 {
		t.Errorf("non-numeric score = %v, want 0", scored[0].Score)
	}
}

func TestProductsStandalone(t *testing.T) {
	raw := `1. Cadeira Gamer Thunder
   Score: 8.2
   Strengths: comfort
2. Mesa Office Slim
   Score: 7.9`

	products := Products(raw)
	if len(products) != 2 {
		t.Fatalf("got %d products", len(products))
	}
	if products[0].Title != "Cadeira Gamer Thunder" || products[0].Score != 8.2 {
		t.Errorf("first = %+v", products[0])
	}
	if products[0].Strengths != "comfort" {
		t.Errorf("strengths = %q", products[0].Strengths)
	}
	if !products[0].Available {
		t.Error("standalone candidates should default to available")
	}
}

func TestProductsEmptyInput(t *testing.T) {
	if got := Products(""); len(got) != 0 {
		t.Errorf("Products(\"\") = %+v", got)
	}
	if got := Products(strings.Repeat("prose without markers\n", 3)); len(got) != 0 {
		t.Errorf("markerless input = %+v", got)
	}
}
