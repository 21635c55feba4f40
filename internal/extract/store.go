package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/affiscout/affiscout/internal/normalize"
	"github.com/affiscout/affiscout/internal/utils"
)

// storeMarker opens a new candidate block: "-", "*" or "<digits>.".
var storeMarker = regexp.MustCompile(`^(\d+\.|[-*])\s*`)

// Stores parses raw agent output into store candidates.
//
// Structured output gets a fast path: when the text (after stripping code
// fences) decodes as a JSON array of candidates, it is used directly.
// Otherwise a line-oriented scan runs: marker lines open a block, "http"
// lines resolve the block's affiliate URL, everything else accumulates
// into the description. A block is emitted when its successor marker
// arrives or the input ends, and only with a non-empty name. Input with
// no markers at all yields nothing.
func Stores(raw string) []CandidateStore {
	cleaned := utils.SanitizeJSON(raw)
	if utils.LooksLikeJSON(cleaned) {
		if stores, ok := storesFromJSON(cleaned); ok {
			return stores
		}
	}
	return scanStores(raw)
}

func storesFromJSON(cleaned string) ([]CandidateStore, bool) {
	var decoded []CandidateStore
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, false
	}

	stores := make([]CandidateStore, 0, len(decoded))
	for _, c := range decoded {
		if c.Platform == "" {
			c.Platform = normalize.InferPlatform(c.AffiliateURL)
		}
		if c.Valid() {
			stores = append(stores, c)
		}
	}
	return stores, true
}

// scanState tracks the line scanner: outside any candidate block, or
// collecting lines for the current one.
type scanState int

const (
	seekingBlock scanState = iota
	inBlock
)

func scanStores(raw string) []CandidateStore {
	stores := []CandidateStore{}
	state := seekingBlock

	var current CandidateStore
	var fragment []string

	flush := func() {
		if current.Name == "" {
			return
		}
		if current.AffiliateURL == "" {
			current.Platform = normalize.PlatformUnknown
		}
		current.RawFragment = strings.Join(fragment, "\n")
		if current.Valid() {
			stores = append(stores, current)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if marker := storeMarker.FindString(line); marker != "" {
			// The previous candidate is complete once its successor starts.
			if state == inBlock {
				flush()
			}
			state = inBlock
			current = CandidateStore{Name: blockName(line[len(marker):])}
			fragment = []string{line}
			if strings.Contains(line, "http") {
				applyURL(&current, line)
			}
			continue
		}

		if state != inBlock {
			continue
		}
		fragment = append(fragment, line)

		switch {
		case strings.Contains(line, "http"):
			applyURL(&current, line)
		case current.Description == "":
			current.Description = line
		default:
			current.Description += " " + line
		}
	}

	if state == inBlock {
		flush()
	}
	return stores
}

// blockName takes the text after the list marker up to the first " - "
// separator, so "Amazon Brasil - https://..." yields "Amazon Brasil".
func blockName(rest string) string {
	name, _, _ := strings.Cut(rest, " - ")
	return strings.TrimSpace(name)
}

// applyURL pulls the first URL out of a line and resolves the candidate's
// affiliate URL from it. The platform sticks to whatever the first URL
// resolved; later URL lines update the link only.
func applyURL(c *CandidateStore, line string) {
	start := strings.Index(line, "http")
	if start < 0 {
		return
	}
	url := line[start:]
	if end := strings.IndexByte(url, ' '); end >= 0 {
		url = url[:end]
	}
	url = strings.TrimSuffix(url, ".")

	c.AffiliateURL = url
	if c.Platform == "" {
		c.Platform = normalize.InferPlatform(url)
	}
}
