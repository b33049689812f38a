package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/components"
	"github.com/semi-technologies/weaviate-io/content"
	"github.com/semi-technologies/weaviate-io/logging"
	"github.com/semi-technologies/weaviate-io/nav"
	"github.com/semi-technologies/weaviate-io/templates"
)

// pageData is what a handler hands to the base layout.
type pageData struct {
	Route       string
	Title       string
	Description string
	Body        template.HTML
}

// newContext returns a plush context with the site wide helpers set.
func (s *Site) newContext(route string) *plush.Context {
	cfg := s.Config
	ctx := plush.NewContext()

	ctx.Set("siteTitle", cfg.Title)
	ctx.Set("tagline", cfg.Tagline)
	ctx.Set("customFields", cfg.CustomFields)
	ctx.Set("currentPath", route)
	ctx.Set("posts", s.Content.Posts())

	ctx.Set("url", cfg.URLFor)
	ctx.Set("featureBox", components.FeatureBox)
	ctx.Set("icon", components.Icon)

	ctx.Set("startsWith", strings.HasPrefix)
	ctx.Set("replaceAll", strings.ReplaceAll)
	ctx.Set("join", strings.Join)
	ctx.Set("date", func(p *content.Post) string {
		if p.Date.IsZero() {
			return ""
		}
		return p.Date.Format("January 2, 2006")
	})

	return ctx
}

// canonical returns the absolute URL of route, a path that already carries
// the base URL.
func (s *Site) canonical(route string) string {
	c := s.Config.AbsoluteURL(strings.TrimPrefix(route, strings.TrimSuffix(s.Config.BaseURL, "/")))
	if s.Config.TrailingSlash && !strings.HasSuffix(c, "/") {
		c += "/"
	}
	return c
}

// render executes the base layout around data.Body.
func (s *Site) render(data pageData) ([]byte, error) {
	navbar, err := nav.RenderNavbar(s.Config, s.Navbar, data.Route)
	if err != nil {
		return nil, err
	}
	footer, err := nav.RenderFooter(s.Config, s.Footer, s.Year)
	if err != nil {
		return nil, err
	}

	description := data.Description
	if description == "" {
		description = s.Config.Tagline
	}
	favicon := ""
	if s.Config.Favicon != "" {
		favicon = s.Config.URLFor(s.Config.Favicon)
	}

	ctx := s.newContext(data.Route)
	ctx.Set("title", data.Title)
	ctx.Set("description", description)
	ctx.Set("canonical", s.canonical(data.Route))
	ctx.Set("favicon", favicon)
	ctx.Set("stylesheets", s.Stylesheets())
	ctx.Set("scripts", s.Scripts())
	ctx.Set("navbar", navbar)
	ctx.Set("footer", footer)
	ctx.Set("yield", data.Body)

	out, err := s.layout.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error executing base layout")
	}
	return []byte(out), nil
}

// renderTemplate renders one of the embedded content templates with vars.
func (s *Site) renderTemplate(name, route string, vars map[string]interface{}) (template.HTML, error) {
	src, err := fs.ReadFile(templates.FS, name)
	if err != nil {
		return "", errors.WithStack(err)
	}
	ctx := s.newContext(route)
	for k, v := range vars {
		ctx.Set(k, v)
	}
	out, err := plush.Render(string(src), ctx)
	if err != nil {
		return "", errors.Wrapf(err, "error rendering %s", name)
	}
	return template.HTML(out), nil
}

func (s *Site) write(w http.ResponseWriter, status int, data pageData) {
	page, err := s.render(data)
	if err != nil {
		s.fail(w, data.Route, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

func (s *Site) fail(w http.ResponseWriter, route string, err error) {
	logger := logging.WithComponent("handlers")
	logger.Error().Err(err).Str("route", route).Msg("render failed")
	http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
}

// DynamicHandler serves a standalone plush or markdown page.
func DynamicHandler(site *Site, page Page) http.HandlerFunc {
	route := site.Config.URLFor(page.Route)

	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Route: route, Title: page.Title}

		switch page.TemplateType {
		case TemplatePlush:
			out, err := plush.Render(string(page.body), site.newContext(route))
			if err != nil {
				site.fail(w, route, errors.Wrapf(err, "page %s", page.Source))
				return
			}
			data.Body = template.HTML(out)
		case TemplateMarkdown:
			md, err := content.RenderPage(page.body, site.Config.ThemeConfig.Prism)
			if err != nil {
				site.fail(w, route, errors.Wrapf(err, "page %s", page.Source))
				return
			}
			if md.Title != "" {
				data.Title = md.Title
			}
			data.Description = md.Description
			data.Body, err = site.renderTemplate(templates.MarkdownPage, route, map[string]interface{}{"body": md.HTML})
			if err != nil {
				site.fail(w, route, err)
				return
			}
		default:
			http.Error(w, "Unsupported template type", http.StatusInternalServerError)
			return
		}

		site.write(w, http.StatusOK, data)
	}
}

// DocHandler serves one doc with its sidebar.
func DocHandler(site *Site, doc *content.Doc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sidebar template.HTML
		if doc.SidebarID != "" {
			entries, err := nav.ResolveSidebar(site.Content.Sidebars()[doc.SidebarID], site.Content, doc.Permalink)
			if err == nil {
				sidebar, err = nav.RenderSidebar(entries)
			}
			if err != nil {
				site.fail(w, doc.Permalink, err)
				return
			}
		}

		body, err := site.renderTemplate(templates.DocPage, doc.Permalink, map[string]interface{}{
			"doc":        doc,
			"sidebar":    sidebar,
			"hasSidebar": sidebar != "",
		})
		if err != nil {
			site.fail(w, doc.Permalink, err)
			return
		}
		site.write(w, http.StatusOK, pageData{Route: doc.Permalink, Title: doc.Title, Description: doc.Description, Body: body})
	}
}

// BlogListHandler serves the index of all posts.
func BlogListHandler(site *Site) http.HandlerFunc {
	blog, _ := site.Config.Blog()
	route := site.Config.URLFor(blog.RouteBasePath)

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := site.renderTemplate(templates.BlogList, route, nil)
		if err != nil {
			site.fail(w, route, err)
			return
		}
		site.write(w, http.StatusOK, pageData{Route: route, Title: "Blog", Body: body})
	}
}

func PostHandler(site *Site, post *content.Post) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := site.renderTemplate(templates.BlogPost, post.Permalink, map[string]interface{}{"post": post})
		if err != nil {
			site.fail(w, post.Permalink, err)
			return
		}
		site.write(w, http.StatusOK, pageData{Route: post.Permalink, Title: post.Title, Description: post.Description, Body: body})
	}
}

// RenderNotFound renders the 404 page.
func (s *Site) RenderNotFound() ([]byte, error) {
	route := s.Config.URLFor("/404")
	body, err := s.renderTemplate(templates.NotFound, route, nil)
	if err != nil {
		return nil, err
	}
	return s.render(pageData{Route: route, Title: "Page Not Found", Body: body})
}
