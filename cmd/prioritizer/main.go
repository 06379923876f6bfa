package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/priorank/sitemap-prioritizer/config"
	"github.com/priorank/sitemap-prioritizer/internal/api"
	"github.com/priorank/sitemap-prioritizer/internal/nlp"
	"github.com/priorank/sitemap-prioritizer/internal/scoring"
	"github.com/priorank/sitemap-prioritizer/internal/sitemap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Probe the optional NLP capabilities once; the scorer degrades through
	// embedding > word-vector > exact depending on what loaded.
	var encoder scoring.SentenceEncoder
	if enc, ok := nlp.LoadEncoder(cfg.Models.EmbeddingEndpoint, cfg.GetScanTimeout()); ok {
		encoder = enc
		log.Println("Sentence embedding capability enabled")
	}
	var vectors scoring.WordVectors
	if store, ok := nlp.LoadWordVectors(cfg.Models.WordVectorsPath); ok {
		vectors = store
		log.Printf("Word vector capability enabled (%d dimensions)", store.Dim())
	}
	if encoder == nil && vectors == nil {
		log.Println("No NLP capabilities available, using exact keyword matching")
	}

	fetcher := sitemap.NewFetcher(&sitemap.FetcherConfig{
		Timeout:     cfg.GetScanTimeout(),
		UserAgent:   cfg.Scan.UserAgent,
		MaxFetches:  cfg.Scan.MaxSitemapFetches,
		MaxDepth:    cfg.Scan.MaxDepth,
		Concurrency: cfg.Scan.Concurrency,
	})
	scorer := scoring.NewScorer(encoder, vectors)

	// Initialize API server
	handler := api.NewHandler(fetcher, scorer)
	server := api.NewServer(cfg.Server.Port, handler, cfg.Static.Dir)

	go func() {
		log.Printf("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *api.Server) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
