package scoring

import (
	"context"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// ExactStrategy counts case-insensitive substring matches of each tier's
// keywords in the URL path. It needs no model and never fails, making it the
// terminal fallback of the chain.
type ExactStrategy struct{}

func (ExactStrategy) Name() string { return "exact" }

func (ExactStrategy) ScoreAll(_ context.Context, paths []string, keywords models.KeywordSet) ([]TierScores, error) {
	scores := make([]TierScores, len(paths))
	for i, path := range paths {
		lower := strings.ToLower(path)
		scores[i] = TierScores{
			High:   countMatches(lower, keywords.High),
			Medium: countMatches(lower, keywords.Medium),
			Low:    countMatches(lower, keywords.Low),
		}
	}
	return scores, nil
}

func countMatches(lowerPath string, keywords []string) float64 {
	var n float64
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerPath, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}
