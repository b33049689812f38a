package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/assets"
	"github.com/semi-technologies/weaviate-io/utils"
)

const SitemapPath = "/sitemap.xml"

// SetupRouter registers every page, doc, blog post and asset of site.
// Registering the same path twice is an error.
func SetupRouter(site *Site) (*mux.Router, error) {
	router := mux.NewRouter()
	router.NotFoundHandler = Custom404Handler(site)

	registered := map[string]bool{}
	handle := func(route string, h http.Handler) error {
		if registered[route] {
			return errors.Errorf("route %s is registered twice", route)
		}
		registered[route] = true
		router.Handle(route, h).Methods(http.MethodGet, http.MethodHead)
		return nil
	}

	for _, page := range site.Pages {
		if err := handle(site.Config.URLFor(page.Route), DynamicHandler(site, page)); err != nil {
			return nil, err
		}
	}

	for _, doc := range site.Content.Docs() {
		if err := handle(doc.Permalink, DocHandler(site, doc)); err != nil {
			return nil, errors.Wrapf(err, "doc %s", doc.ID)
		}
	}

	if blog, ok := site.Config.Blog(); ok {
		if err := handle(site.Config.URLFor(blog.RouteBasePath), BlogListHandler(site)); err != nil {
			return nil, err
		}
		for _, post := range site.Content.Posts() {
			if err := handle(post.Permalink, PostHandler(site, post)); err != nil {
				return nil, errors.Wrapf(err, "post %s", post.Slug)
			}
		}
	}

	for _, f := range site.Assets {
		if err := handle(f.Path, AssetHandler(f)); err != nil {
			return nil, err
		}
	}

	sitemap, err := utils.GenerateSitemapContent(site.Config.URL, site.PageRoutes(), time.Now(), site.Config.TrailingSlash)
	if err != nil {
		return nil, errors.Wrap(err, "error generating sitemap")
	}
	router.HandleFunc(site.Config.URLFor(SitemapPath), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(sitemap)
	}).Methods(http.MethodGet)

	return router, nil
}

// PageRoutes lists the URL path of every HTML page, excluding assets and the
// sitemap.
func (s *Site) PageRoutes() []string {
	var routes []string
	for _, p := range s.Pages {
		routes = append(routes, s.Config.URLFor(p.Route))
	}
	for _, d := range s.Content.Docs() {
		routes = append(routes, d.Permalink)
	}
	if blog, ok := s.Config.Blog(); ok {
		routes = append(routes, s.Config.URLFor(blog.RouteBasePath))
		for _, p := range s.Content.Posts() {
			routes = append(routes, p.Permalink)
		}
	}
	return routes
}

func AssetHandler(f assets.File) http.HandlerFunc {
	contentType := "application/octet-stream"
	switch f.Kind {
	case assets.Stylesheet:
		contentType = "text/css; charset=utf-8"
	case assets.Script:
		contentType = "text/javascript; charset=utf-8"
	case assets.SourceMap:
		contentType = "application/json"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(f.Contents)
	}
}
