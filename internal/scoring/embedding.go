package scoring

import (
	"context"
	"errors"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// SentenceEncoder turns texts into semantic vectors, one per input text.
type SentenceEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingStrategy scores each tier as the maximum cosine similarity
// between the URL path's sentence embedding and any keyword embedding in
// that tier. The path is encoded as its tokens joined by spaces.
type EmbeddingStrategy struct {
	encoder SentenceEncoder
}

func NewEmbeddingStrategy(encoder SentenceEncoder) *EmbeddingStrategy {
	return &EmbeddingStrategy{encoder: encoder}
}

func (s *EmbeddingStrategy) Name() string { return "embedding" }

func (s *EmbeddingStrategy) ScoreAll(ctx context.Context, paths []string, keywords models.KeywordSet) ([]TierScores, error) {
	if keywords.Empty() {
		return nil, errors.New("no keywords to embed")
	}

	high := nonEmpty(keywords.High)
	medium := nonEmpty(keywords.Medium)
	low := nonEmpty(keywords.Low)

	// One batch: all tier keywords first, then the path phrases.
	texts := make([]string, 0, len(high)+len(medium)+len(low)+len(paths))
	texts = append(texts, high...)
	texts = append(texts, medium...)
	texts = append(texts, low...)
	for _, path := range paths {
		texts = append(texts, pathPhrase(path))
	}

	vecs, err := s.encoder.Encode(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, errors.New("encoder returned wrong vector count")
	}

	highVecs := vecs[:len(high)]
	mediumVecs := vecs[len(high) : len(high)+len(medium)]
	lowVecs := vecs[len(high)+len(medium) : len(high)+len(medium)+len(low)]
	pathVecs := vecs[len(texts)-len(paths):]

	scores := make([]TierScores, len(paths))
	for i, pv := range pathVecs {
		scores[i] = TierScores{
			High:   maxSimilarity(pv, highVecs),
			Medium: maxSimilarity(pv, mediumVecs),
			Low:    maxSimilarity(pv, lowVecs),
		}
	}
	return scores, nil
}

func nonEmpty(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			out = append(out, kw)
		}
	}
	return out
}

// pathPhrase joins the path tokens into a whitespace-separated phrase for
// sentence encoding.
func pathPhrase(path string) string {
	return strings.Join(splitPathTerms(strings.ToLower(path)), " ")
}

// maxSimilarity returns the best cosine similarity against any keyword
// vector; an empty tier scores 0.
func maxSimilarity(pathVec []float64, keywordVecs [][]float64) float64 {
	var best float64
	for _, kv := range keywordVecs {
		if sim := cosine(pathVec, kv); sim > best {
			best = sim
		}
	}
	return best
}
