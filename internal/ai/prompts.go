package ai

import "strings"

// Prompt templates for the discovery and scoring agent sequences.
// Placeholders {country}, {period} and {niche} are substituted per run.

const storeResearchPrompt = `You are an Affiliate Market Research Analyst, an expert with a keen eye
for affiliate market trends.

Research the best trends in the affiliate market of {country} for the
period {period}, in seek of good partner stores to promote products in
the {niche} niche.

Produce a bullet list of the best choices for partners in the affiliate
market, along with statistic data and each store's affiliate program
website URL.`

const storeSelectionPrompt = `You are a Market Analyst skilled in trends and forecasting results.
Your goal is to nail the best choices for partnerships in the affiliate
market of {country}.

Based on the research below, produce a filtered, ordered list of the top
5 stores to work with. Format each entry as a numbered line:

1. Store Name - https://store-affiliate-program-url

Research:
{research_result}`

const productAnalysisPrompt = `You are a Product Analysis Expert, an experienced analyst with deep
knowledge of e-commerce and consumer behavior.

Analyze the following products to determine their market potential,
pricing competitiveness and likely conversion rate. Consider current
market trends, seasonality and target audience.

Products:
{products}

For each product report:
1. Market potential score (1-10)
2. Price competitiveness score (1-10)
3. Estimated conversion rate (%)
4. Seasonality factors
5. Target audience match
6. Overall score (1-10)`

const productCurationPrompt = `You are a Product Curator, a strategic curator with expertise in
identifying high-conversion products for affiliate marketing.

Based on the product analysis below, select and prioritize the top
products. Focus on the highest potential for conversion and
profitability.

Produce a prioritized list where each product is a numbered block:

1. Product name
   Overall score: <number>
   Key strengths: <text>
   Recommended marketing approach: <text>

Use the exact product names from the analysis.

Analysis:
{analysis_result}`

func renderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
