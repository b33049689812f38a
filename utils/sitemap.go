package utils

import (
	"encoding/xml"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// GenerateSitemapContent builds a sitemap for routes on siteURL. Routes are
// deduplicated and sorted so the output is stable. A zero lastMod omits the
// lastmod element.
func GenerateSitemapContent(siteURL string, routes []string, lastMod time.Time, trailingSlash bool) ([]byte, error) {
	sitemap := Sitemap{
		Xmlns: sitemapNamespace,
	}

	seen := make(map[string]bool, len(routes))
	sorted := make([]string, 0, len(routes))
	for _, r := range routes {
		if !seen[r] {
			seen[r] = true
			sorted = append(sorted, r)
		}
	}
	sort.Strings(sorted)

	base := strings.TrimSuffix(siteURL, "/")
	for _, route := range sorted {
		if trailingSlash && !strings.HasSuffix(route, "/") {
			route += "/"
		}
		u := Url{Loc: base + route, ChangeFreq: "weekly", Priority: "0.5"}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.Format("2006-01-02")
		}
		sitemap.Urls = append(sitemap.Urls, u)
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return append([]byte(xml.Header), xmlOutput...), nil
}
