package sitemap

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// xmlNode is a generic element tree. Matching on XMLName.Local makes the
// extractor indifferent to whether the document declares the sitemaps.org
// namespace, a prefixed one, or none at all.
type xmlNode struct {
	XMLName  xml.Name
	Children []xmlNode `xml:",any"`
	Text     string    `xml:",chardata"`
}

// Extract parses one sitemap document. It returns the extracted entries and
// whether the document is a sitemap index; index entries are child sitemap
// URLs with no lastmod. A root element that is neither a sitemapindex nor a
// urlset yields an empty list.
//
// encoding/xml does not resolve DTDs or external entities, so untrusted
// input cannot trigger XXE expansion.
func Extract(data []byte) ([]models.SitemapEntry, bool, error) {
	var root xmlNode
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, false, &ParseError{Err: err}
	}

	switch root.XMLName.Local {
	case "sitemapindex":
		var entries []models.SitemapEntry
		for _, child := range root.Children {
			loc := childText(child, "loc")
			if loc == "" {
				continue
			}
			entries = append(entries, models.SitemapEntry{Loc: loc})
		}
		return entries, true, nil

	case "urlset":
		var entries []models.SitemapEntry
		for _, child := range root.Children {
			if child.XMLName.Local != "url" {
				continue
			}
			loc := childText(child, "loc")
			if loc == "" {
				continue
			}
			entries = append(entries, models.SitemapEntry{
				Loc:     loc,
				LastMod: childText(child, "lastmod"),
			})
		}
		return entries, false, nil
	}

	return nil, false, nil
}

// childText returns the trimmed text of the first immediate child whose
// local tag name matches. A whitespace-only value counts as absent.
func childText(n xmlNode, local string) string {
	for _, c := range n.Children {
		if c.XMLName.Local == local {
			return strings.TrimSpace(c.Text)
		}
	}
	return ""
}
