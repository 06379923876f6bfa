// internal/models/sitemap.go
package models

// SitemapEntry is one leaf URL extracted from a urlset document. LastMod is
// empty when the sitemap carries no lastmod for the URL.
type SitemapEntry struct {
	Loc     string
	LastMod string
}
