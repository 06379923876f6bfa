package scoring

import (
	"context"
	"math"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// TierScores holds one raw (unweighted) value per keyword tier: a similarity
// in the embedding/word-vector strategies, a match count in the exact one.
type TierScores struct {
	High   float64
	Medium float64
	Low    float64
}

// Strategy scores a batch of URL paths against the keyword tiers. Strategies
// backed by an optional capability may fail; the scorer then degrades to the
// next strategy in the chain.
type Strategy interface {
	Name() string
	ScoreAll(ctx context.Context, paths []string, keywords models.KeywordSet) ([]TierScores, error)
}

// splitPathTerms splits a URL path on the '/', '-', '_' and '.' delimiters,
// discarding empty tokens.
func splitPathTerms(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	})
}

// cosine returns the cosine similarity of two vectors. Mismatched lengths or
// a zero-norm operand yield 0.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
