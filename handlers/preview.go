package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// NewPreviewHandler serves a built site from dir the way a static host would:
// "/x" is looked up as x, x.html and x/index.html, and misses get 404.html.
func NewPreviewHandler(dir, baseURL string) http.Handler {
	base := strings.TrimSuffix(baseURL, "/")
	p := &preview{dir: dir, base: base}

	router := httprouter.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.GET("/*filepath", p.serve)
	router.HEAD("/*filepath", p.serve)
	return router
}

type preview struct {
	dir  string
	base string
}

func (p *preview) serve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	urlPath := ps.ByName("filepath")
	if p.base != "" {
		if urlPath != p.base && !strings.HasPrefix(urlPath, p.base+"/") {
			p.notFound(w, r)
			return
		}
		urlPath = strings.TrimPrefix(urlPath, p.base)
	}

	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	candidates := []string{rel, rel + ".html", path.Join(rel, "index.html")}
	if rel == "" {
		candidates = []string{"index.html"}
	}
	for _, c := range candidates {
		if f := p.file(c); f != "" {
			http.ServeFile(w, r, f)
			return
		}
	}
	p.notFound(w, r)
}

func (p *preview) file(rel string) string {
	if rel == "" {
		return ""
	}
	f := filepath.Join(p.dir, filepath.FromSlash(rel))
	info, err := os.Stat(f)
	if err != nil || info.IsDir() {
		return ""
	}
	return f
}

func (p *preview) notFound(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(filepath.Join(p.dir, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}
