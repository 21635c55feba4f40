package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/affiscout/affiscout/internal/extract"
)

// StoreDiscoveryAgent runs the two-phase store discovery sequence:
// a researcher pass that surveys the affiliate market, then a curator
// pass that narrows the findings to a ranked shortlist. The returned
// text is raw curator output; extraction happens downstream.
type StoreDiscoveryAgent struct {
	llm Generator
}

func NewStoreDiscoveryAgent(llm Generator) *StoreDiscoveryAgent {
	return &StoreDiscoveryAgent{llm: llm}
}

func (a *StoreDiscoveryAgent) DiscoverStores(ctx context.Context, country, period, niche string) (string, error) {
	vars := map[string]string{
		"country": country,
		"period":  period,
		"niche":   niche,
	}

	research, err := a.llm.Generate(ctx, renderPrompt(storeResearchPrompt, vars))
	if err != nil {
		return "", fmt.Errorf("store research phase: %w", err)
	}

	vars["research_result"] = research
	selection, err := a.llm.Generate(ctx, renderPrompt(storeSelectionPrompt, vars))
	if err != nil {
		return "", fmt.Errorf("store selection phase: %w", err)
	}
	return selection, nil
}

// ProductScoringAgent runs the analysis → curation sequence over a
// product catalog and returns the curator's ranked free text.
type ProductScoringAgent struct {
	llm Generator
}

func NewProductScoringAgent(llm Generator) *ProductScoringAgent {
	return &ProductScoringAgent{llm: llm}
}

func (a *ProductScoringAgent) ScoreProducts(ctx context.Context, products []extract.CandidateProduct) (string, error) {
	dump, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode products for analysis: %w", err)
	}

	analysis, err := a.llm.Generate(ctx, renderPrompt(productAnalysisPrompt, map[string]string{
		"products": string(dump),
	}))
	if err != nil {
		return "", fmt.Errorf("product analysis phase: %w", err)
	}

	curation, err := a.llm.Generate(ctx, renderPrompt(productCurationPrompt, map[string]string{
		"analysis_result": analysis,
	}))
	if err != nil {
		return "", fmt.Errorf("product curation phase: %w", err)
	}
	return curation, nil
}
