package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const defaultRank = 999

// scoreNumber finds the first decimal number in a "Score: 9.2/10" tail.
var scoreNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// scoredBlock is one ranked entry parsed out of the curation agent's text.
type scoredBlock struct {
	Rank              int
	Name              string
	Score             float64
	Strengths         string
	MarketingApproach string
}

// ScoreProducts merges the curation agent's ranked free-text output back
// into the known product catalog. Blocks are matched to known products by
// exact title; matched products get the block's rank, score, strengths and
// marketing approach overlaid, unmatched blocks are dropped. When not a
// single block resolves, every known product passes through unscored with
// the raw text attached and a sequential rank, so unparseable scoring text
// never empties the pipeline. Output is sorted by ascending rank.
func ScoreProducts(raw string, known []CandidateProduct) []CandidateProduct {
	byTitle := make(map[string]CandidateProduct, len(known))
	for _, p := range known {
		byTitle[p.Title] = p
	}

	scored := []CandidateProduct{}
	for _, block := range parseScoredBlocks(raw) {
		original, ok := byTitle[block.Name]
		if !ok {
			continue
		}
		merged := original
		merged.Rank = block.Rank
		merged.Score = block.Score
		merged.Strengths = block.Strengths
		merged.MarketingApproach = block.MarketingApproach
		scored = append(scored, merged)
	}

	if len(scored) == 0 {
		// Fallback: pass the catalog through unscored rather than losing it.
		for i, p := range known {
			p.RawScoreData = raw
			p.Rank = i + 1
			scored = append(scored, p)
		}
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Rank < scored[j].Rank })
	return scored
}

// Products parses the agent's ranked list without a catalog to merge
// against, surfacing every block as a bare candidate.
func Products(raw string) []CandidateProduct {
	blocks := parseScoredBlocks(raw)
	products := make([]CandidateProduct, 0, len(blocks))
	for _, block := range blocks {
		products = append(products, CandidateProduct{
			Title:             block.Name,
			Rank:              block.Rank,
			Score:             block.Score,
			Strengths:         block.Strengths,
			MarketingApproach: block.MarketingApproach,
			Available:         true,
		})
	}
	return products
}

func parseScoredBlocks(raw string) []scoredBlock {
	blocks := []scoredBlock{}
	state := seekingBlock

	var current scoredBlock

	flush := func() {
		if current.Name != "" {
			blocks = append(blocks, current)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isProductBlockStart(line) {
			if state == inBlock {
				flush()
			}
			state = inBlock
			current = parseBlockStart(line)
			continue
		}

		if state != inBlock {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "score") && strings.Contains(line, ":"):
			_, tail, _ := strings.Cut(line, ":")
			if m := scoreNumber.FindString(tail); m != "" {
				current.Score, _ = strconv.ParseFloat(m, 64)
			} else {
				current.Score = 0
			}
		case strings.Contains(lower, "strength") && strings.Contains(line, ":"):
			_, tail, _ := strings.Cut(line, ":")
			current.Strengths = strings.TrimSpace(tail)
		case strings.Contains(lower, "marketing") && strings.Contains(line, ":"):
			_, tail, _ := strings.Cut(line, ":")
			current.MarketingApproach = strings.TrimSpace(tail)
		}
	}

	if state == inBlock {
		flush()
	}
	return blocks
}

// isProductBlockStart recognizes "12. Product Name" (the ". " must sit
// within the first ten characters so long digit runs in prose don't open
// blocks) and plain bullets.
func isProductBlockStart(line string) bool {
	if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
		return true
	}
	if line[0] < '0' || line[0] > '9' {
		return false
	}
	head := line
	if len(head) > 10 {
		head = head[:10]
	}
	return strings.Contains(head, ". ")
}

// parseBlockStart captures the leading rank and the product name. A
// missing or non-numeric rank defaults to 999 so unranked entries sink to
// the bottom of the ordering.
func parseBlockStart(line string) scoredBlock {
	if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
		return scoredBlock{
			Rank: defaultRank,
			Name: strings.TrimSpace(strings.TrimLeft(line, "*- ")),
		}
	}

	rankPart, namePart, _ := strings.Cut(line, ".")
	block := scoredBlock{Rank: defaultRank, Name: strings.TrimSpace(namePart)}
	if rank, err := strconv.Atoi(strings.TrimSpace(rankPart)); err == nil {
		block.Rank = rank
	}
	return block
}
