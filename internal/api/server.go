package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

func NewServer(port int, handler *Handler, staticDir string) *Server {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
		api.POST("/prioritize", handler.PrioritizeSitemap)
	}

	setupStatic(router, staticDir)

	return &Server{
		router: router,
		port:   port,
	}
}

// setupStatic serves the built frontend when one is present, falling back to
// index.html for client-side routes. Without a frontend the root returns a
// short informational payload.
func setupStatic(router *gin.Engine, staticDir string) {
	indexPath := filepath.Join(staticDir, "index.html")
	if info, err := os.Stat(indexPath); err != nil || info.IsDir() {
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service": "sitemap-prioritizer",
				"message": "API is running. POST /api/prioritize to rank sitemap URLs.",
			})
		})
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/assets") {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		candidate := filepath.Join(staticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(indexPath)
	})
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		// A scan of a large sitemap tree can take minutes; the write timeout
		// must outlive the whole recursive fetch.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
