package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semi-technologies/weaviate-io/config"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "docs/weaviate/index.md", "---\ntitle: Weaviate\n---\nThe vector search engine.\n")
	writeFile(t, root, "docs/contributor-guide/index.md", "Contribute here.\n")
	writeFile(t, root, "blog/2022-11-01-hello-world.md", "---\ntitle: Hello World\nauthors: [bob, alice]\n---\nFirst post.\n")
	writeFile(t, root, "sidebars.yaml", "docsSidebar:\n  - weaviate/index\ncontributorSidebar:\n  - contributor-guide/index\n")
	writeFile(t, root, "src/css/custom.css", ":root { --ifm-color-primary: #61bd73; }\n")
	writeFile(t, root, "static/img/site/logo.svg", "<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>\n")
	return root
}

func newTestSite(t *testing.T, cfg config.SiteConfig, root string) (*Site, *mux.Router) {
	t.Helper()
	site, err := NewSite(cfg, root, 2022)
	require.NoError(t, err)
	router, err := SetupRouter(site)
	require.NoError(t, err)
	return site, router
}

func get(t *testing.T, h http.Handler, target string) (int, string, http.Header) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body), rec.Header()
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	var paths []string
	require.NoError(t, router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p, err := route.GetPathTemplate()
		if err == nil {
			paths = append(paths, p)
		}
		return nil
	}))

	for _, want := range []string{"/", "/pricing", "/podcast", "/developers/weaviate", "/developers/contributor-guide", "/blog", "/blog/hello-world", "/sitemap.xml", "/assets/css/highlight.css"} {
		assert.Contains(t, paths, want)
	}
}

func TestIndexPage(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, header := get(t, router, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "text/html; charset=utf-8", header.Get("Content-Type"))
	assert.Contains(t, body, "<title>Weaviate Docs</title>")
	assert.Contains(t, body, "v1.16.4")
	assert.Contains(t, body, `href="/blog/hello-world"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://weaviate.io/" />`)
	assert.Contains(t, body, `href="/assets/css/highlight.css"`)
	assert.Contains(t, body, `class="navbar"`)
	assert.Contains(t, body, "Copyright © 2022 Weaviate, Inc.")
}

func TestPricingPageRendersFeatureBox(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, _ := get(t, router, "/pricing")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Pricing | Weaviate Docs</title>")
	assert.Contains(t, body, "Business Critical")
	assert.Equal(t, 3, strings.Count(body, `<ul class="feature-box__features">`))
	assert.Contains(t, body, "navbar__link--active")
}

func TestDocPage(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, _ := get(t, router, "/developers/weaviate")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<h1>Weaviate</h1>")
	assert.Contains(t, body, "The vector search engine.")
	assert.Contains(t, body, `class="docs-sidebar"`)
	assert.Contains(t, body, "Edit this page")
	assert.Contains(t, body, "dropdown--active")
}

func TestBlogPages(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, _ := get(t, router, "/blog")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "November 1, 2022")
	assert.Contains(t, body, "1 min read")

	code, body, _ = get(t, router, "/blog/hello-world")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Hello World | Weaviate Docs</title>")
	assert.Contains(t, body, "bob, alice")
}

func TestNotFoundAndStatic(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, _ := get(t, router, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Page Not Found")

	code, body, _ = get(t, router, "/img/site/logo.svg")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<svg")
}

func TestSitemap(t *testing.T) {
	_, router := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, header := get(t, router, "/sitemap.xml")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "application/xml; charset=utf-8", header.Get("Content-Type"))
	assert.Contains(t, body, "<loc>https://weaviate.io/developers/weaviate</loc>")
	assert.Contains(t, body, "<loc>https://weaviate.io/pricing</loc>")
	assert.NotContains(t, body, "highlight.css")
}

func TestUnknownNavbarDocFailsSite(t *testing.T) {
	root := fixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "docs", "contributor-guide")))
	writeFile(t, root, "sidebars.yaml", "docsSidebar:\n  - weaviate/index\n")

	_, err := NewSite(config.Weaviate(), root, 2022)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown doc id "contributor-guide/index"`)
}

func TestPagesOnDiskReplaceBuiltIns(t *testing.T) {
	root := fixture(t)
	writeFile(t, root, "src/pages/podcast.md", "---\ntitle: Our Podcast\n---\nEpisode one.\n")
	writeFile(t, root, "src/pages/community/index.plush.html", "<p>Join <%= siteTitle %></p>\n")

	site, router := newTestSite(t, config.Weaviate(), root)

	routes := site.PageRoutes()
	assert.Contains(t, routes, "/community")

	code, body, _ := get(t, router, "/podcast")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Our Podcast | Weaviate Docs</title>")
	assert.Contains(t, body, "Episode one.")
	assert.NotContains(t, body, "Listen on YouTube")

	code, body, _ = get(t, router, "/community")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<p>Join Weaviate Docs</p>")
}

func TestDuplicateRoute(t *testing.T) {
	root := fixture(t)
	writeFile(t, root, "src/pages/developers/weaviate.md", "Shadowing the docs.\n")

	site, err := NewSite(config.Weaviate(), root, 2022)
	require.NoError(t, err)
	_, err = SetupRouter(site)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route /developers/weaviate is registered twice")
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		rel      string
		route    string
		title    string
		template string
	}{
		{"index.plush.html", "/", "", TemplatePlush},
		{"pricing.plush.html", "/pricing", "Pricing", TemplatePlush},
		{"reindex.md", "/reindex", "Reindex", TemplateMarkdown},
		{"company/about-us/index.md", "/company/about-us", "About Us", TemplateMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			p := newPage(tt.rel, tt.rel, nil)
			assert.Equal(t, tt.route, p.Route)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.template, p.TemplateType)
		})
	}
}

func TestUnsupportedTemplateType(t *testing.T) {
	site, _ := newTestSite(t, config.Weaviate(), fixture(t))

	code, body, _ := get(t, DynamicHandler(site, Page{Route: "/x", TemplateType: "HTML"}), "/x")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "Unsupported template type")
}

func TestPreviewHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "home")
	writeFile(t, dir, "pricing.html", "pricing")
	writeFile(t, dir, "developers/weaviate/index.html", "docs")
	writeFile(t, dir, "404.html", "missing")
	writeFile(t, dir, "assets/css/highlight.css", "body{}")

	h := NewPreviewHandler(dir, "/")
	tests := []struct {
		target string
		code   int
		body   string
	}{
		{"/", http.StatusOK, "home"},
		{"/pricing", http.StatusOK, "pricing"},
		{"/developers/weaviate", http.StatusOK, "docs"},
		{"/assets/css/highlight.css", http.StatusOK, "body{}"},
		{"/nope", http.StatusNotFound, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			code, body, _ := get(t, h, tt.target)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestPreviewHandlerBaseURL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pricing.html", "pricing")

	h := NewPreviewHandler(dir, "/site/")
	code, body, _ := get(t, h, "/site/pricing")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pricing", body)

	code, _, _ = get(t, h, "/pricing")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReloadable(t *testing.T) {
	text := func(s string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, s) })
	}
	r := NewReloadable(text("one"))
	_, body, _ := get(t, r, "/")
	assert.Equal(t, "one", body)

	r.Swap(text("two"))
	_, body, _ = get(t, r, "/")
	assert.Equal(t, "two", body)
}

func TestCanonical(t *testing.T) {
	cfg := config.Weaviate()
	site := &Site{Config: cfg}
	assert.Equal(t, "https://weaviate.io/", site.canonical("/"))
	assert.Equal(t, "https://weaviate.io/pricing", site.canonical("/pricing"))

	cfg.BaseURL = "/site/"
	cfg.TrailingSlash = true
	site = &Site{Config: cfg}
	assert.Equal(t, "https://weaviate.io/site/", site.canonical("/site"))
	assert.Equal(t, "https://weaviate.io/site/pricing/", site.canonical("/site/pricing"))
}
