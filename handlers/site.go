package handlers

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/assets"
	"github.com/semi-technologies/weaviate-io/config"
	"github.com/semi-technologies/weaviate-io/content"
	"github.com/semi-technologies/weaviate-io/logging"
	"github.com/semi-technologies/weaviate-io/nav"
	"github.com/semi-technologies/weaviate-io/templates"
)

const (
	TemplatePlush    = "PLUSH"
	TemplateMarkdown = "MARKDOWN"

	pagesDir  = "src/pages"
	staticDir = "static"
)

// Page is a standalone page served at Route.
type Page struct {
	Route        string
	Title        string
	TemplateType string
	Source       string
	body         []byte
}

// Site is everything the router needs, assembled once per build.
type Site struct {
	Config  config.SiteConfig
	Root    string
	Content *content.Tree
	Navbar  []nav.Node
	Footer  []nav.Column
	Assets  []assets.File
	Pages   []Page
	Year    int

	layout *plush.Template
}

// NewSite loads content, resolves navigation, compiles assets and collects
// pages for cfg. Any unresolved doc reference fails here.
func NewSite(cfg config.SiteConfig, root string, year int) (*Site, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	tree, err := content.Load(root, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error loading content")
	}

	navbar, err := nav.Resolve(cfg, cfg.ThemeConfig.Navbar.Items, tree)
	if err != nil {
		return nil, errors.Wrap(err, "error resolving navbar")
	}
	footer, err := nav.ResolveFooter(cfg, tree)
	if err != nil {
		return nil, errors.Wrap(err, "error resolving footer")
	}

	files, err := assets.Compile(root, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling assets")
	}

	pages, err := loadPages(root)
	if err != nil {
		return nil, errors.Wrap(err, "error loading pages")
	}

	layoutSrc, err := fs.ReadFile(templates.FS, templates.BaseLayout)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	layout, err := plush.Parse(string(layoutSrc))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing base layout")
	}

	logger := logging.WithComponent("site")
	logger.Info().
		Int("docs", len(tree.Docs())).
		Int("posts", len(tree.Posts())).
		Int("pages", len(pages)).
		Int("assets", len(files)).
		Msg("site loaded")

	return &Site{
		Config:  cfg,
		Root:    root,
		Content: tree,
		Navbar:  navbar,
		Footer:  footer,
		Assets:  files,
		Pages:   pages,
		Year:    year,
		layout:  layout,
	}, nil
}

// loadPages collects the built-in pages and any plush or markdown pages under
// root/src/pages. Pages on disk replace built-in pages with the same route.
func loadPages(root string) ([]Page, error) {
	byRoute := map[string]Page{}

	embedded, err := fs.Glob(templates.FS, templates.PagesDir+"/*.plush.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, name := range embedded {
		body, err := fs.ReadFile(templates.FS, name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		p := newPage(strings.TrimPrefix(name, templates.PagesDir+"/"), "embedded:"+name, body)
		byRoute[p.Route] = p
	}

	dir := filepath.Join(root, pagesDir)
	if _, err := os.Stat(dir); err == nil {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			if !strings.HasSuffix(name, ".plush.html") && !strings.HasSuffix(name, ".md") {
				return nil
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			body, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			page := newPage(filepath.ToSlash(rel), p, body)
			byRoute[page.Route] = page
			return nil
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	pages := make([]Page, 0, len(byRoute))
	for _, p := range byRoute {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

func newPage(rel, source string, body []byte) Page {
	templateType := TemplatePlush
	name := strings.TrimSuffix(rel, ".plush.html")
	if strings.HasSuffix(rel, ".md") {
		templateType = TemplateMarkdown
		name = strings.TrimSuffix(rel, ".md")
	}

	if name == "index" {
		name = ""
	}
	route := "/" + strings.TrimSuffix(name, "/index")

	title := ""
	if route != "/" {
		title = content.TitleFromID(path.Base(route))
	}

	return Page{Route: route, Title: title, TemplateType: templateType, Source: source, body: body}
}

// Stylesheets returns the URL paths of every compiled stylesheet.
func (s *Site) Stylesheets() []string {
	return assets.Paths(s.Assets, assets.Stylesheet)
}

func (s *Site) Scripts() []string {
	return assets.Paths(s.Assets, assets.Script)
}

// InternalLinks lists internal navbar and footer hrefs.
func (s *Site) InternalLinks() []string {
	links := nav.InternalLinks(s.Navbar)
	for _, col := range s.Footer {
		links = append(links, nav.InternalLinks(col.Items)...)
	}
	return links
}
