package config

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// config/yaml.go

const (
	PresetClassic = "classic"

	BrokenLinksThrow  = "throw"
	BrokenLinksWarn   = "warn"
	BrokenLinksIgnore = "ignore"

	defaultDocsPath  = "docs"
	defaultDocsRoute = "docs"
	defaultBlogPath  = "blog"
	defaultBlogRoute = "blog"
)

// SiteConfig describes a whole documentation site. It is built once per
// build and only ever read afterwards.
type SiteConfig struct {
	Title                 string         `yaml:"title"`
	Tagline               string         `yaml:"tagline"`
	URL                   string         `yaml:"url"`
	BaseURL               string         `yaml:"baseUrl"`
	TrailingSlash         bool           `yaml:"trailingSlash"`
	OnBrokenLinks         string         `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks string         `yaml:"onBrokenMarkdownLinks"`
	Favicon               string         `yaml:"favicon"`
	OrganizationName      string         `yaml:"organizationName"`
	ProjectName           string         `yaml:"projectName"`
	CustomFields          map[string]any `yaml:"customFields"`
	ClientModules         []string       `yaml:"clientModules,omitempty"`
	Presets               []Preset       `yaml:"presets"`
	ThemeConfig           ThemeConfig    `yaml:"themeConfig"`
}

type PresetOptions struct {
	Docs  *DocsOptions  `yaml:"docs,omitempty"`
	Blog  *BlogOptions  `yaml:"blog,omitempty"`
	Theme *ThemeOptions `yaml:"theme,omitempty"`
}

// DocsOptions configures the docs plugin. A nil *DocsOptions enables the
// plugin with defaults; `docs: false` decodes to options with Disabled set.
type DocsOptions struct {
	Disabled      bool   `yaml:"-"`
	SidebarPath   string `yaml:"sidebarPath"`
	EditURL       string `yaml:"editUrl"`
	Path          string `yaml:"path"`
	RouteBasePath string `yaml:"routeBasePath"`
}

type BlogOptions struct {
	Disabled        bool   `yaml:"-"`
	ShowReadingTime bool   `yaml:"showReadingTime"`
	EditURL         string `yaml:"editUrl"`
	Path            string `yaml:"path"`
	RouteBasePath   string `yaml:"routeBasePath"`
}

type plainDocsOptions DocsOptions

func (o *DocsOptions) UnmarshalYAML(unmarshal func(interface{}) error) error {
	disabled, err := pluginDisabled(unmarshal, "docs")
	if err != nil || disabled {
		*o = DocsOptions{Disabled: disabled}
		return err
	}
	return unmarshal((*plainDocsOptions)(o))
}

func (o DocsOptions) MarshalYAML() (interface{}, error) {
	if o.Disabled {
		return false, nil
	}
	return plainDocsOptions(o), nil
}

type plainBlogOptions BlogOptions

func (o *BlogOptions) UnmarshalYAML(unmarshal func(interface{}) error) error {
	disabled, err := pluginDisabled(unmarshal, "blog")
	if err != nil || disabled {
		*o = BlogOptions{Disabled: disabled}
		return err
	}
	return unmarshal((*plainBlogOptions)(o))
}

func (o BlogOptions) MarshalYAML() (interface{}, error) {
	if o.Disabled {
		return false, nil
	}
	return plainBlogOptions(o), nil
}

// pluginDisabled reports whether a plugin's options are the literal false.
// true is rejected since an enabled plugin takes a mapping or nothing.
func pluginDisabled(unmarshal func(interface{}) error, plugin string) (bool, error) {
	var enabled bool
	if err := unmarshal(&enabled); err != nil {
		return false, nil
	}
	if enabled {
		return false, errors.Errorf("%s must be an options mapping or false", plugin)
	}
	return true, nil
}

type ThemeOptions struct {
	CustomCSS string `yaml:"customCss"`
}

type ThemeConfig struct {
	Navbar Navbar `yaml:"navbar"`
	Footer Footer `yaml:"footer"`
	Prism  Prism  `yaml:"prism"`
}

type Logo struct {
	Alt string `yaml:"alt"`
	Src string `yaml:"src"`
}

type Navbar struct {
	Title string    `yaml:"title"`
	Logo  Logo      `yaml:"logo"`
	Items []NavItem `yaml:"items"`
}

type FooterColumn struct {
	Title string    `yaml:"title"`
	Items []NavItem `yaml:"items"`
}

type Footer struct {
	Style     string         `yaml:"style"`
	Links     []FooterColumn `yaml:"links"`
	Copyright string         `yaml:"copyright"`
}

// Prism names the light and dark code themes. Theme names are chroma style
// names.
type Prism struct {
	Theme               string   `yaml:"theme"`
	DarkTheme           string   `yaml:"darkTheme"`
	AdditionalLanguages []string `yaml:"additionalLanguages"`
}

// Docs returns the docs options of the classic preset, with defaults applied.
// ok is false without a classic preset or when the docs plugin is disabled.
func (c SiteConfig) Docs() (DocsOptions, bool) {
	p, found := c.classic()
	if !found || (p.Docs != nil && p.Docs.Disabled) {
		return DocsOptions{}, false
	}
	var opts DocsOptions
	if p.Docs != nil {
		opts = *p.Docs
	}
	if opts.Path == "" {
		opts.Path = defaultDocsPath
	}
	if opts.RouteBasePath == "" {
		opts.RouteBasePath = defaultDocsRoute
	}
	return opts, true
}

// Blog returns the blog options of the classic preset, with defaults applied.
func (c SiteConfig) Blog() (BlogOptions, bool) {
	p, found := c.classic()
	if !found || (p.Blog != nil && p.Blog.Disabled) {
		return BlogOptions{}, false
	}
	var opts BlogOptions
	if p.Blog != nil {
		opts = *p.Blog
	}
	if opts.Path == "" {
		opts.Path = defaultBlogPath
	}
	if opts.RouteBasePath == "" {
		opts.RouteBasePath = defaultBlogRoute
	}
	return opts, true
}

func (c SiteConfig) Theme() ThemeOptions {
	p, found := c.classic()
	if !found || p.Theme == nil {
		return ThemeOptions{}
	}
	return *p.Theme
}

func (c SiteConfig) classic() (PresetOptions, bool) {
	for _, p := range c.Presets {
		if p.Name == PresetClassic {
			return p.Options, true
		}
	}
	return PresetOptions{}, false
}

// URLFor joins route onto the base URL. The result always starts with "/".
func (c SiteConfig) URLFor(route string) string {
	base := c.BaseURL
	if base == "" {
		base = "/"
	}
	joined := path.Join(base, route)
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return joined
}

// AbsoluteURL returns the canonical URL of route including the site origin.
func (c SiteConfig) AbsoluteURL(route string) string {
	return strings.TrimSuffix(c.URL, "/") + c.URLFor(route)
}

func (c SiteConfig) CustomField(key string) (any, bool) {
	v, ok := c.CustomFields[key]
	return v, ok
}
