package scoring

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// Scorer runs the best available strategy over a flat entry list. The chain
// is ordered embedding > word-vector > exact; a strategy that fails at
// runtime degrades to the next one. Scoring is a pure function of the entry
// list and keywords.
type Scorer struct {
	strategies []Strategy
}

// NewScorer assembles the strategy chain from the capabilities present.
// Either capability may be nil; the exact strategy is always appended so the
// chain can never be empty.
func NewScorer(encoder SentenceEncoder, vectors WordVectors) *Scorer {
	var chain []Strategy
	if encoder != nil {
		chain = append(chain, NewEmbeddingStrategy(encoder))
	}
	if vectors != nil {
		chain = append(chain, NewWordVectorStrategy(vectors))
	}
	chain = append(chain, ExactStrategy{})
	return &Scorer{strategies: chain}
}

// Score produces one ScoredURL per entry, order preserved.
func (s *Scorer) Score(ctx context.Context, entries []models.SitemapEntry, keywords models.KeywordSet) []models.ScoredURL {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = urlPath(e.Loc)
	}

	var tiers []TierScores
	for _, strat := range s.strategies {
		scored, err := strat.ScoreAll(ctx, paths, keywords)
		if err != nil {
			log.Printf("Scoring strategy %q unavailable: %v", strat.Name(), err)
			continue
		}
		tiers = scored
		break
	}

	results := make([]models.ScoredURL, len(entries))
	for i, e := range entries {
		w := TierScores{
			High:   models.WeightHigh * tiers[i].High,
			Medium: models.WeightMedium * tiers[i].Medium,
			Low:    models.WeightLow * tiers[i].Low,
		}
		total := w.High + w.Medium + w.Low
		results[i] = models.ScoredURL{
			URL:             e.Loc,
			MatchedCategory: bestCategory(w, total),
			PriorityScore:   total,
			URLDepth:        urlDepth(e.Loc),
			LastModified:    e.LastMod,
		}
	}
	return results
}

// bestCategory picks the tier with the largest weighted value. Ties resolve
// High > Medium > Low; a zero weighted value never wins.
func bestCategory(w TierScores, total float64) string {
	if total <= 0 {
		return models.CategoryUnmatched
	}
	best := models.CategoryUnmatched
	bestVal := 0.0
	for _, c := range []struct {
		name  string
		value float64
	}{
		{models.CategoryHigh, w.High},
		{models.CategoryMedium, w.Medium},
		{models.CategoryLow, w.Low},
	} {
		if c.value > bestVal {
			bestVal = c.value
			best = c.name
		}
	}
	return best
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

// urlDepth counts non-empty path segments; "https://x.com/" has depth 0.
func urlDepth(raw string) int {
	p := strings.Trim(urlPath(raw), "/")
	if p == "" {
		return 0
	}
	depth := 0
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
