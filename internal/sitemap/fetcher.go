package sitemap

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

const maxSitemapBytes = 10 << 20 // 10 MB

// FetcherConfig tunes the recursive sitemap traversal.
type FetcherConfig struct {
	Timeout     time.Duration
	UserAgent   string
	MaxFetches  int // total documents fetched across the whole tree
	MaxDepth    int // index nesting depth
	Concurrency int // parallel child-sitemap fetches per index
}

type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxFetches  int
	maxDepth    int
	concurrency int
}

func NewFetcher(cfg *FetcherConfig) *Fetcher {
	if cfg == nil {
		cfg = &FetcherConfig{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxFetches := cfg.MaxFetches
	if maxFetches <= 0 {
		maxFetches = 500
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		userAgent:   cfg.UserAgent,
		maxFetches:  maxFetches,
		maxDepth:    maxDepth,
		concurrency: concurrency,
	}
}

// visitedSet tracks sitemap URLs already claimed during one traversal so a
// cyclic index cannot recurse forever, and counts fetches against the cap.
type visitedSet struct {
	mu      sync.Mutex
	urls    map[string]bool
	fetched int
}

func (v *visitedSet) claim(url string, max int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.urls[url] || v.fetched >= max {
		return false
	}
	v.urls[url] = true
	v.fetched++
	return true
}

// Fetch retrieves the sitemap at sitemapURL and returns its flat list of
// leaf entries. Index documents are followed recursively; a failure on any
// individual child sitemap is logged and that child contributes zero
// entries, so one broken branch never aborts the whole tree.
func (f *Fetcher) Fetch(ctx context.Context, sitemapURL string) ([]models.SitemapEntry, error) {
	visited := &visitedSet{urls: make(map[string]bool)}
	return f.fetch(ctx, sitemapURL, 0, visited)
}

func (f *Fetcher) fetch(ctx context.Context, sitemapURL string, depth int, visited *visitedSet) ([]models.SitemapEntry, error) {
	if !visited.claim(sitemapURL, f.maxFetches) {
		log.Printf("Skipping sitemap %s: already visited or fetch cap reached", sitemapURL)
		return nil, nil
	}

	data, err := f.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &EmptyContentError{URL: sitemapURL}
	}

	entries, isIndex, err := Extract(data)
	if err != nil {
		return nil, err
	}
	if !isIndex {
		return entries, nil
	}

	if depth >= f.maxDepth {
		log.Printf("Skipping children of %s: max index depth %d reached", sitemapURL, f.maxDepth)
		return nil, nil
	}

	// Children fetch concurrently but merge in child order. Workers never
	// return an error, so a failing child cannot cancel its siblings.
	results := make([][]models.SitemapEntry, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, child := range entries {
		i, child := i, child
		g.Go(func() error {
			sub, err := f.fetch(gctx, child.Loc, depth+1, visited)
			if err != nil {
				log.Printf("Skipping child sitemap %s: %v", child.Loc, err)
				return nil
			}
			results[i] = sub
			return nil
		})
	}
	_ = g.Wait()

	var flat []models.SitemapEntry
	for _, sub := range results {
		flat = append(flat, sub...)
	}
	return flat, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	return data, nil
}
