package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/priorank/sitemap-prioritizer/internal/models"
	"github.com/priorank/sitemap-prioritizer/internal/scoring"
	"github.com/priorank/sitemap-prioritizer/internal/sitemap"
	"github.com/priorank/sitemap-prioritizer/internal/utils"
)

type Handler struct {
	fetcher *sitemap.Fetcher
	scorer  *scoring.Scorer
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHandler(fetcher *sitemap.Fetcher, scorer *scoring.Scorer) *Handler {
	return &Handler{fetcher: fetcher, scorer: scorer}
}

// PrioritizeSitemap fetches the sitemap tree, scores every URL against the
// keyword tiers, and returns the results sorted by priority.
func (h *Handler) PrioritizeSitemap(c *gin.Context) {
	var req models.PrioritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	sitemapURL := strings.TrimSpace(req.SitemapURL)
	if sitemapURL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sitemap_url is required"})
		return
	}
	if !strings.HasPrefix(sitemapURL, "http://") && !strings.HasPrefix(sitemapURL, "https://") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sitemap_url must be a valid HTTP(S) URL"})
		return
	}

	scanID := uuid.New()
	logger, err := utils.NewScanLogger(scanID.String())
	if err != nil {
		log.Printf("Failed to create scan logger: %v", err)
	} else {
		defer logger.Close()
		logger.LogInfo("Starting scan %s for %s", scanID, sitemapURL)
	}

	started := time.Now()
	entries, err := h.fetcher.Fetch(c.Request.Context(), sitemapURL)
	if err != nil {
		if logger != nil {
			logger.LogError("Scan %s failed: %v", scanID, err)
		}
		respondFetchError(c, err)
		return
	}

	results := h.scorer.Score(c.Request.Context(), entries, req.Keywords)
	scoring.SortByPriority(results)
	if results == nil {
		results = []models.ScoredURL{}
	}

	if logger != nil {
		logger.LogInfo("Scan %s completed: %d URLs in %v", scanID, len(results), time.Since(started))
	}

	c.JSON(http.StatusOK, models.PrioritizeResponse{
		TotalURLs: len(results),
		Results:   results,
	})
}

// respondFetchError maps the fetch/parse error taxonomy onto 422 responses
// with a message that embeds the underlying cause.
func respondFetchError(c *gin.Context, err error) {
	var reqErr *sitemap.RequestError
	var statusErr *sitemap.StatusError
	var emptyErr *sitemap.EmptyContentError

	switch {
	case errors.As(err, &reqErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("Could not fetch sitemap: %v. Check the URL and try again.", reqErr.Err),
		})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("Sitemap returned error %d. Invalid or inaccessible sitemap.", statusErr.StatusCode),
		})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Sitemap returned empty content"})
	default:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("Invalid sitemap or parsing error: %v", err),
		})
	}
}
