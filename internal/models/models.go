package models

// Tier weights applied identically by every scoring strategy.
const (
	WeightHigh   = 3.0
	WeightMedium = 2.0
	WeightLow    = 1.0
)

// Matched category labels returned to the caller.
const (
	CategoryHigh      = "High"
	CategoryMedium    = "Medium"
	CategoryLow       = "Low"
	CategoryUnmatched = "Unmatched"
)

// KeywordSet holds the three keyword priority tiers. Empty tiers are valid
// and contribute zero score. A keyword appearing in more than one tier
// accrues in each tier independently.
type KeywordSet struct {
	High   []string `json:"High"`
	Medium []string `json:"Medium"`
	Low    []string `json:"Low"`
}

// Empty reports whether no tier has any keyword.
func (k KeywordSet) Empty() bool {
	return len(k.High) == 0 && len(k.Medium) == 0 && len(k.Low) == 0
}

// ScoredURL is the final per-URL result: immutable once created, ordered by
// the ranker, then serialized to the caller.
type ScoredURL struct {
	URL             string  `json:"url"`
	MatchedCategory string  `json:"matched_category"`
	PriorityScore   float64 `json:"priority_score"`
	URLDepth        int     `json:"url_depth"`
	LastModified    string  `json:"last_modified,omitempty"`
}

// PrioritizeRequest is the inbound request body.
type PrioritizeRequest struct {
	SitemapURL string     `json:"sitemap_url"`
	Keywords   KeywordSet `json:"keywords"`
}

// PrioritizeResponse is the outbound response body.
type PrioritizeResponse struct {
	TotalURLs int         `json:"total_urls"`
	Results   []ScoredURL `json:"results"`
	Error     string      `json:"error,omitempty"`
}
