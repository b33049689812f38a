package cmd

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/semi-technologies/weaviate-io/config"
	"github.com/semi-technologies/weaviate-io/handlers"
	"github.com/semi-technologies/weaviate-io/logging"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSiteConfig()
		if err != nil {
			return err
		}
		return build(cfg, siteRoot(), outDir(), time.Now())
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// build renders every route of the site into out. Static files are copied as
// they are.
func build(cfg config.SiteConfig, root, out string, now time.Time) error {
	logger := logging.WithComponent("build")
	start := time.Now()

	site, err := handlers.NewSite(cfg, root, now.Year())
	if err != nil {
		return err
	}
	if err := checkLinks(site.InternalLinks(), site.PageRoutes(), cfg.OnBrokenLinks); err != nil {
		return err
	}

	router, err := handlers.SetupRouter(site)
	if err != nil {
		return errors.Wrap(err, "error setting up router")
	}

	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return errors.Wrap(err, "error creating output directory")
	}

	copied, err := copyStatic(site.StaticDir(), out)
	if err != nil {
		return errors.Wrap(err, "error copying static files")
	}

	server := httptest.NewServer(router)
	defer server.Close()

	pages := map[string]bool{}
	for _, r := range site.PageRoutes() {
		pages[r] = true
	}

	generated := 0
	err = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		dest := outputPath(p, cfg.BaseURL, pages[p], cfg.TrailingSlash)
		if err := generateStaticPage(server, p, filepath.Join(out, dest)); err != nil {
			return errors.Wrapf(err, "error generating %s", p)
		}
		generated++
		return nil
	})
	if err != nil {
		return err
	}

	notFound, err := site.RenderNotFound()
	if err != nil {
		return errors.Wrap(err, "error rendering 404 page")
	}
	if err := writeFile(filepath.Join(out, "404.html"), notFound); err != nil {
		return err
	}

	logger.Info().
		Int("files", generated+1).
		Int("static", copied).
		Str("out", out).
		Dur("took", time.Since(start)).
		Msg("static site generated")
	return nil
}

func generateStaticPage(server *httptest.Server, route, filePath string) error {
	resp, err := http.Get(server.URL + route)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	logger := logging.WithComponent("build")
	logger.Debug().Str("route", route).Str("file", filePath).Msg("generated")
	return writeFile(filePath, body)
}

// outputPath maps a served URL path to a file below the output directory.
// Pages become <route>.html, or <route>/index.html with trailing slashes.
// Other files keep their path.
func outputPath(route, baseURL string, page, trailingSlash bool) string {
	base := strings.TrimSuffix(baseURL, "/")
	rel := strings.TrimPrefix(strings.TrimPrefix(route, base), "/")
	if !page {
		return filepath.FromSlash(rel)
	}
	rel = strings.TrimSuffix(rel, "/")
	switch {
	case rel == "":
		return "index.html"
	case trailingSlash:
		return filepath.FromSlash(path.Join(rel, "index.html"))
	default:
		return filepath.FromSlash(rel + ".html")
	}
}

// checkLinks reports internal navbar and footer links that no page serves.
func checkLinks(links, routes []string, policy string) error {
	known := make(map[string]bool, len(routes))
	for _, r := range routes {
		known[strings.TrimSuffix(r, "/")] = true
	}

	var broken []string
	for _, l := range links {
		target, _, _ := strings.Cut(l, "#")
		if !known[strings.TrimSuffix(target, "/")] {
			broken = append(broken, l)
		}
	}
	if len(broken) == 0 {
		return nil
	}

	switch policy {
	case config.BrokenLinksThrow:
		return errors.Errorf("broken links: %s", strings.Join(broken, ", "))
	case config.BrokenLinksIgnore:
	default:
		logger := logging.WithComponent("build")
		for _, l := range broken {
			logger.Warn().Str("href", l).Msg("broken link")
		}
	}
	return nil
}

func copyStatic(src, out string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		n++
		return copyFile(p, filepath.Join(out, rel))
	})
	return n, err
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return errors.WithStack(err)
	}
	return writeFile(dst, input)
}

func writeFile(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(renameio.WriteFile(filePath, data, 0644))
}
