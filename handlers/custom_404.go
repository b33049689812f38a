package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Custom404Handler serves files from root/static for unmatched paths and
// renders the site 404 page for everything else.
func Custom404Handler(site *Site) http.Handler {
	static := http.FileServer(http.Dir(filepath.Join(site.Root, staticDir)))
	base := strings.TrimSuffix(site.Config.BaseURL, "/")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := path.Clean("/" + strings.TrimPrefix(r.URL.Path, base))
		if rel != "/" && site.hasStatic(rel) {
			r2 := r.Clone(r.Context())
			r2.URL.Path = rel
			static.ServeHTTP(w, r2)
			return
		}

		page, err := site.RenderNotFound()
		if err != nil {
			site.fail(w, r.URL.Path, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(page)
	})
}

func (s *Site) hasStatic(rel string) bool {
	info, err := os.Stat(filepath.Join(s.Root, staticDir, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

// StaticDir is where files copied verbatim into the output live.
func (s *Site) StaticDir() string {
	return filepath.Join(s.Root, staticDir)
}
