package scoring

import (
	"context"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// WordVectors looks up a pre-trained vector for a single word. The second
// return is false for out-of-vocabulary words.
type WordVectors interface {
	Vector(word string) ([]float64, bool)
}

// WordVectorStrategy scores each tier as the maximum cosine similarity
// between any path-term vector and any keyword vector in that tier. An exact
// substring match of a keyword inside the lowercased path dominates and
// forces the tier similarity to 1.0.
type WordVectorStrategy struct {
	vectors WordVectors
}

func NewWordVectorStrategy(vectors WordVectors) *WordVectorStrategy {
	return &WordVectorStrategy{vectors: vectors}
}

func (s *WordVectorStrategy) Name() string { return "wordvec" }

func (s *WordVectorStrategy) ScoreAll(_ context.Context, paths []string, keywords models.KeywordSet) ([]TierScores, error) {
	highVecs := s.keywordVectors(keywords.High)
	mediumVecs := s.keywordVectors(keywords.Medium)
	lowVecs := s.keywordVectors(keywords.Low)

	scores := make([]TierScores, len(paths))
	for i, path := range paths {
		lower := strings.ToLower(path)
		termVecs := s.termVectors(lower)
		scores[i] = TierScores{
			High:   tierSimilarity(lower, keywords.High, highVecs, termVecs),
			Medium: tierSimilarity(lower, keywords.Medium, mediumVecs, termVecs),
			Low:    tierSimilarity(lower, keywords.Low, lowVecs, termVecs),
		}
	}
	return scores, nil
}

// termVectors collects vectors for path tokens longer than one character.
func (s *WordVectorStrategy) termVectors(lowerPath string) [][]float64 {
	var vecs [][]float64
	for _, term := range splitPathTerms(lowerPath) {
		if len(term) <= 1 {
			continue
		}
		if v, ok := s.vectors.Vector(term); ok {
			vecs = append(vecs, v)
		}
	}
	return vecs
}

// keywordVectors builds one vector per keyword: the mean of the word vectors
// for multi-word keywords. Keywords with no in-vocabulary words get nil.
func (s *WordVectorStrategy) keywordVectors(keywords []string) [][]float64 {
	vecs := make([][]float64, len(keywords))
	for i, kw := range keywords {
		vecs[i] = s.meanVector(strings.Fields(strings.ToLower(kw)))
	}
	return vecs
}

func (s *WordVectorStrategy) meanVector(words []string) []float64 {
	var sum []float64
	var n int
	for _, w := range words {
		v, ok := s.vectors.Vector(w)
		if !ok {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			continue
		}
		for j := range v {
			sum[j] += v[j]
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for j := range sum {
		sum[j] /= float64(n)
	}
	return sum
}

func tierSimilarity(lowerPath string, keywords []string, keywordVecs, termVecs [][]float64) float64 {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowerPath, strings.ToLower(kw)) {
			return 1.0
		}
	}
	var best float64
	for _, kv := range keywordVecs {
		if kv == nil {
			continue
		}
		for _, tv := range termVecs {
			if sim := cosine(tv, kv); sim > best {
				best = sim
			}
		}
	}
	return best
}
