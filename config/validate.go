package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ValidationError collects every problem found in a SiteConfig.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid site config: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid site config (%d problems):\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants of cfg. Document ids are not
// resolved here; that happens when the navigation is resolved against the
// loaded docs.
func Validate(cfg SiteConfig) error {
	v := &ValidationError{}

	if strings.TrimSpace(cfg.Title) == "" {
		v.add("title is required")
	}

	if u, err := url.Parse(cfg.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.add("url %q must be an absolute http(s) URL", cfg.URL)
	} else if u.Path != "" && u.Path != "/" {
		v.add("url %q must not contain a path, use baseUrl", cfg.URL)
	}

	if !strings.HasPrefix(cfg.BaseURL, "/") {
		v.add("baseUrl %q must begin with /", cfg.BaseURL)
	} else if !strings.HasSuffix(cfg.BaseURL, "/") {
		v.add("baseUrl %q must end with /", cfg.BaseURL)
	}

	checkPolicy(v, "onBrokenLinks", cfg.OnBrokenLinks)
	checkPolicy(v, "onBrokenMarkdownLinks", cfg.OnBrokenMarkdownLinks)

	for i, p := range cfg.Presets {
		if p.Name != PresetClassic {
			v.add("presets[%d]: unknown preset %q", i, p.Name)
		}
	}
	if docs, ok := cfg.Docs(); ok {
		checkRouteBase(v, "docs", docs.RouteBasePath)
		checkEditURL(v, "docs", docs.EditURL)
	}
	if blog, ok := cfg.Blog(); ok {
		checkRouteBase(v, "blog", blog.RouteBasePath)
		checkEditURL(v, "blog", blog.EditURL)
	}
	docs, docsOK := cfg.Docs()
	blog, blogOK := cfg.Blog()
	if docsOK && blogOK && docs.RouteBasePath == blog.RouteBasePath {
		v.add("docs and blog share routeBasePath %q", docs.RouteBasePath)
	}

	for i, item := range cfg.ThemeConfig.Navbar.Items {
		if err := item.Check(); err != nil {
			v.add("navbar.items[%d]: %v", i, err)
		}
		if !docsOK {
			for _, label := range docLinks(item) {
				v.add("navbar.items[%d]: %q links a doc but the docs plugin is disabled", i, label)
			}
		}
	}

	switch cfg.ThemeConfig.Footer.Style {
	case "", "dark", "light":
	default:
		v.add("footer.style must be dark or light, got %q", cfg.ThemeConfig.Footer.Style)
	}
	for i, col := range cfg.ThemeConfig.Footer.Links {
		for j, item := range col.Items {
			if item.IsGroup() {
				v.add("footer.links[%d].items[%d]: %q must be a link, not a dropdown", i, j, item.Label)
				continue
			}
			if err := item.Check(); err != nil {
				v.add("footer.links[%d].items[%d]: %v", i, j, err)
			}
			if !docsOK && item.Target != nil && item.Target.Kind == TargetDoc {
				v.add("footer.links[%d].items[%d]: %q links a doc but the docs plugin is disabled", i, j, item.Label)
			}
		}
	}

	prism := cfg.ThemeConfig.Prism
	for _, name := range []string{prism.Theme, prism.DarkTheme} {
		if name == "" {
			continue
		}
		if _, ok := styles.Registry[name]; !ok {
			v.add("prism theme %q is not a known style", name)
		}
	}
	for _, lang := range prism.AdditionalLanguages {
		if lexers.Get(lang) == nil {
			v.add("prism additional language %q is not supported", lang)
		}
	}

	if len(v.Problems) > 0 {
		return v
	}
	return nil
}

// docLinks returns the labels of item and its children that link a doc.
func docLinks(item NavItem) []string {
	if item.Target != nil && item.Target.Kind == TargetDoc {
		return []string{item.Label}
	}
	var labels []string
	for _, child := range item.Items {
		labels = append(labels, docLinks(child)...)
	}
	return labels
}

func checkPolicy(v *ValidationError, field, value string) {
	switch value {
	case "", BrokenLinksThrow, BrokenLinksWarn, BrokenLinksIgnore:
	default:
		v.add("%s must be throw, warn or ignore, got %q", field, value)
	}
}

func checkRouteBase(v *ValidationError, plugin, route string) {
	if strings.HasPrefix(route, "/") || strings.HasSuffix(route, "/") {
		v.add("%s routeBasePath %q must not begin or end with /", plugin, route)
	}
}

func checkEditURL(v *ValidationError, plugin, raw string) {
	if raw == "" {
		return
	}
	if u, err := url.Parse(raw); err != nil || u.Host == "" {
		v.add("%s editUrl %q must be an absolute URL", plugin, raw)
	}
}
