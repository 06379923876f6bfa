package scoring

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

func entriesFor(urls ...string) []models.SitemapEntry {
	entries := make([]models.SitemapEntry, len(urls))
	for i, u := range urls {
		entries[i] = models.SitemapEntry{Loc: u}
	}
	return entries
}

func TestExactMatchScoring(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{High: []string{"cardiology"}}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/cardiology/appointments"), keywords)
	if len(results) != 1 {
		t.Fatalf("Score() returned %d results; want 1", len(results))
	}
	r := results[0]
	if r.PriorityScore != 3 {
		t.Errorf("priority_score = %v; want 3", r.PriorityScore)
	}
	if r.MatchedCategory != models.CategoryHigh {
		t.Errorf("matched_category = %q; want High", r.MatchedCategory)
	}
	if r.URLDepth != 2 {
		t.Errorf("url_depth = %d; want 2", r.URLDepth)
	}
}

func TestUnmatchedURL(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{High: []string{"oncology"}}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/about-us"), keywords)
	r := results[0]
	if r.PriorityScore != 0 {
		t.Errorf("priority_score = %v; want 0", r.PriorityScore)
	}
	if r.MatchedCategory != models.CategoryUnmatched {
		t.Errorf("matched_category = %q; want Unmatched", r.MatchedCategory)
	}
}

func TestTierTieBreakPrefersHigh(t *testing.T) {
	scorer := NewScorer(nil, nil)
	// High: 2 matches x weight 3 = 6; Medium: 3 matches x weight 2 = 6.
	keywords := models.KeywordSet{
		High:   []string{"alpha", "beta"},
		Medium: []string{"gamma", "delta", "epsilon"},
	}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/alpha-beta-gamma-delta-epsilon"), keywords)
	r := results[0]
	if r.PriorityScore != 12 {
		t.Errorf("priority_score = %v; want 12", r.PriorityScore)
	}
	if r.MatchedCategory != models.CategoryHigh {
		t.Errorf("matched_category = %q; want High on tie", r.MatchedCategory)
	}
}

func TestDuplicateKeywordAccruesPerTier(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{
		High:   []string{"news"},
		Medium: []string{"news"},
	}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/news"), keywords)
	if results[0].PriorityScore != 5 {
		t.Errorf("priority_score = %v; want 5 (3+2 from both tiers)", results[0].PriorityScore)
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{Low: []string{"Blog"}}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/BLOG/post-1"), keywords)
	if results[0].PriorityScore != 1 {
		t.Errorf("priority_score = %v; want 1", results[0].PriorityScore)
	}
	if results[0].MatchedCategory != models.CategoryLow {
		t.Errorf("matched_category = %q; want Low", results[0].MatchedCategory)
	}
}

func TestExactStrategySkipsEmptyKeyword(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{High: []string{""}, Low: []string{"blog"}}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/blog/post-1"), keywords)
	// An empty keyword is a substring of every path; counting it would add
	// the High weight to every URL.
	if results[0].PriorityScore != 1 {
		t.Errorf("priority_score = %v; want 1 (empty keyword ignored)", results[0].PriorityScore)
	}
	if results[0].MatchedCategory != models.CategoryLow {
		t.Errorf("matched_category = %q; want Low", results[0].MatchedCategory)
	}
}

func TestURLDepth(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"https://x.com/", 0},
		{"https://x.com", 0},
		{"https://x.com/a/b", 2},
		{"https://x.com/a/b/", 2},
		{"https://x.com/a//b", 2},
	}
	for _, tt := range tests {
		if got := urlDepth(tt.url); got != tt.want {
			t.Errorf("urlDepth(%q) = %d; want %d", tt.url, got, tt.want)
		}
	}
}

func TestScoringIsIdempotent(t *testing.T) {
	scorer := NewScorer(nil, nil)
	keywords := models.KeywordSet{High: []string{"docs"}, Low: []string{"blog"}}
	entries := entriesFor("https://x.com/docs/setup", "https://x.com/blog", "https://x.com/pricing")

	first := scorer.Score(context.Background(), entries, keywords)
	second := scorer.Score(context.Background(), entries, keywords)
	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero norm", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		if got := cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: cosine() = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestSplitPathTerms(t *testing.T) {
	got := splitPathTerms("/cardiology/heart-surgery_unit.v2/")
	want := []string{"cardiology", "heart", "surgery", "unit", "v2"}
	if len(got) != len(want) {
		t.Fatalf("splitPathTerms() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q; want %q", i, got[i], want[i])
		}
	}
}

// stubVectors serves fixed word vectors for the word-vector strategy tests.
type stubVectors struct {
	table map[string][]float64
}

func (s stubVectors) Vector(word string) ([]float64, bool) {
	v, ok := s.table[word]
	return v, ok
}

func TestWordVectorStrategySimilarity(t *testing.T) {
	vectors := stubVectors{table: map[string][]float64{
		"cardiology": {1, 0},
		"heart":      {0.9, 0.1},
		"pricing":    {0, 1},
	}}
	strat := NewWordVectorStrategy(vectors)

	scores, err := strat.ScoreAll(context.Background(), []string{"/heart/unit"}, models.KeywordSet{High: []string{"cardiology"}})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	want := cosine([]float64{0.9, 0.1}, []float64{1, 0})
	if math.Abs(scores[0].High-want) > 1e-9 {
		t.Errorf("High similarity = %v; want %v", scores[0].High, want)
	}
	if scores[0].Medium != 0 || scores[0].Low != 0 {
		t.Errorf("empty tiers scored %v/%v; want 0/0", scores[0].Medium, scores[0].Low)
	}
}

func TestWordVectorStrategyExactMatchDominates(t *testing.T) {
	vectors := stubVectors{table: map[string][]float64{
		"cardiology": {0, 1}, // orthogonal to the path term on purpose
		"heart":      {1, 0},
	}}
	strat := NewWordVectorStrategy(vectors)

	scores, err := strat.ScoreAll(context.Background(), []string{"/cardiology/heart"}, models.KeywordSet{High: []string{"cardiology"}})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	if scores[0].High != 1.0 {
		t.Errorf("High similarity = %v; want exactly 1.0 for substring match", scores[0].High)
	}
}

func TestWordVectorStrategyMultiWordKeywordMean(t *testing.T) {
	vectors := stubVectors{table: map[string][]float64{
		"heart":   {1, 0},
		"surgery": {0, 1},
		"cardiac": {1, 1},
	}}
	strat := NewWordVectorStrategy(vectors)

	scores, err := strat.ScoreAll(context.Background(), []string{"/cardiac/care"}, models.KeywordSet{High: []string{"heart surgery"}})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	// Keyword vector is the mean of "heart" and "surgery": (0.5, 0.5).
	want := cosine([]float64{1, 1}, []float64{0.5, 0.5})
	if math.Abs(scores[0].High-want) > 1e-9 {
		t.Errorf("High similarity = %v; want %v", scores[0].High, want)
	}
}

func TestWordVectorStrategySkipsShortAndUnknownTerms(t *testing.T) {
	vectors := stubVectors{table: map[string][]float64{
		"a":      {1, 0}, // length-1 token must be ignored even if in vocabulary
		"onco":   {1, 0},
		"cancer": {1, 0},
	}}
	strat := NewWordVectorStrategy(vectors)

	scores, err := strat.ScoreAll(context.Background(), []string{"/a/unknownterm"}, models.KeywordSet{High: []string{"cancer"}})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	if scores[0].High != 0 {
		t.Errorf("High similarity = %v; want 0 with no usable path terms", scores[0].High)
	}
}

// stubEncoder returns canned vectors keyed by text.
type stubEncoder struct {
	table map[string][]float64
	err   error
}

func (s stubEncoder) Encode(_ context.Context, texts []string) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := s.table[text]; ok {
			out[i] = v
		} else {
			out[i] = []float64{0, 0}
		}
	}
	return out, nil
}

func TestEmbeddingStrategyScores(t *testing.T) {
	enc := stubEncoder{table: map[string][]float64{
		"cardiology":         {1, 0},
		"blog":               {0, 1},
		"cardiology surgery": {0.8, 0.2},
	}}
	strat := NewEmbeddingStrategy(enc)

	scores, err := strat.ScoreAll(context.Background(), []string{"/cardiology-surgery/"},
		models.KeywordSet{High: []string{"cardiology"}, Low: []string{"blog"}})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	wantHigh := cosine([]float64{0.8, 0.2}, []float64{1, 0})
	if math.Abs(scores[0].High-wantHigh) > 1e-9 {
		t.Errorf("High similarity = %v; want %v", scores[0].High, wantHigh)
	}
	if scores[0].Medium != 0 {
		t.Errorf("Medium similarity = %v; want 0 for empty tier", scores[0].Medium)
	}
}

func TestEmbeddingStrategyRequiresKeywords(t *testing.T) {
	strat := NewEmbeddingStrategy(stubEncoder{})
	if _, err := strat.ScoreAll(context.Background(), []string{"/a"}, models.KeywordSet{}); err == nil {
		t.Fatal("ScoreAll() error = nil; want error for empty keyword set")
	}
}

func TestScorerDegradesWhenEncoderFails(t *testing.T) {
	enc := stubEncoder{err: errors.New("model offline")}
	scorer := NewScorer(enc, nil)
	keywords := models.KeywordSet{High: []string{"cardiology"}}

	results := scorer.Score(context.Background(), entriesFor("https://x.com/cardiology"), keywords)
	if results[0].PriorityScore != 3 || results[0].MatchedCategory != models.CategoryHigh {
		t.Errorf("degraded result = %+v; want exact-match scoring", results[0])
	}
}
