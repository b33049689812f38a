package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const siteYAML = `
title: Weaviate Docs
tagline: Vector Search Engine
url: https://weaviate.io
baseUrl: /
trailingSlash: false
onBrokenLinks: warn
onBrokenMarkdownLinks: warn
favicon: img/favicon.ico
organizationName: semi-technologies
projectName: weaviate-io
customFields:
  weaviateVersion: "1.16.4"
presets:
  - - classic
    - docs:
        sidebarPath: sidebars.yaml
        path: docs
        routeBasePath: developers
      blog:
        showReadingTime: true
      theme:
        customCss: src/css/custom.css
themeConfig:
  navbar:
    title: ""
    logo:
      alt: Weaviate
      src: img/site/logo.svg
    items:
      - label: Pricing
        to: /pricing
        position: right
      - type: dropdown
        label: Developers
        position: right
        items:
          - type: doc
            label: Docs
            docId: weaviate/index
            sidebarid: docsSidebar
          - type: doc
            label: Contributor Guide
            docId: contributor-guide/index
          - label: GitHub
            href: https://github.com/semi-technologies/weaviate-io
  footer:
    style: dark
    links:
      - title: More
        items:
          - label: Blog
            to: /blog
    copyright: "Copyright © {year} Weaviate, Inc."
  prism:
    theme: github
    darkTheme: dracula
    additionalLanguages: [java]
`

func TestWeaviateConfigIsValid(t *testing.T) {
	require.NoError(t, Validate(Weaviate()))
}

func TestWeaviateNavItemsHaveOneTargetPerLeaf(t *testing.T) {
	cfg := Weaviate()

	var items []NavItem
	items = append(items, cfg.ThemeConfig.Navbar.Items...)
	for _, col := range cfg.ThemeConfig.Footer.Links {
		items = append(items, col.Items...)
	}

	var check func(n NavItem)
	check = func(n NavItem) {
		if len(n.Items) > 0 {
			assert.Nil(t, n.Target, "group %q has a direct target", n.Label)
			for _, c := range n.Items {
				check(c)
			}
			return
		}
		require.NotNil(t, n.Target, "leaf %q has no target", n.Label)
		assert.NotEmpty(t, n.Target.Value)
		assert.Contains(t, []TargetKind{TargetRoute, TargetDoc, TargetHref}, n.Target.Kind)
	}
	for _, item := range items {
		check(item)
	}
}

func TestWeaviateRoutePaths(t *testing.T) {
	cfg := Weaviate()
	assert.True(t, strings.HasPrefix(cfg.BaseURL, "/"))

	docs, ok := cfg.Docs()
	require.True(t, ok)
	assert.Equal(t, "developers", docs.RouteBasePath)

	blog, ok := cfg.Blog()
	require.True(t, ok)
	assert.Equal(t, "blog", blog.RouteBasePath)
	assert.Equal(t, "blog", blog.Path)

	for _, route := range []string{docs.RouteBasePath, blog.RouteBasePath} {
		assert.False(t, strings.HasPrefix(route, "/"), route)
		assert.False(t, strings.HasSuffix(route, "/"), route)
	}

	v, ok := cfg.CustomField("weaviateVersion")
	require.True(t, ok)
	assert.Equal(t, "1.16.4", v)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(siteYAML))
	require.NoError(t, err)

	assert.Equal(t, "Weaviate Docs", cfg.Title)
	require.Len(t, cfg.Presets, 1)
	assert.Equal(t, PresetClassic, cfg.Presets[0].Name)
	assert.Equal(t, "src/css/custom.css", cfg.Theme().CustomCSS)

	items := cfg.ThemeConfig.Navbar.Items
	require.Len(t, items, 2)

	want := Dropdown("Developers",
		Doc("Docs", "weaviate/index", "docsSidebar"),
		Doc("Contributor Guide", "contributor-guide/index", ""),
		Href("GitHub", "https://github.com/semi-technologies/weaviate-io"),
	).At(PositionRight)
	if diff := cmp.Diff(want, items[1]); diff != "" {
		t.Errorf("dropdown mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidNavItems(t *testing.T) {
	tests := []struct {
		name  string
		items string
		want  string
	}{
		{
			name:  "two targets",
			items: "- label: Blog\n  to: /blog\n  href: https://example.com",
			want:  "exactly one of to, docId, href",
		},
		{
			name:  "no target",
			items: "- label: Blog",
			want:  "exactly one of to, docId, href",
		},
		{
			name:  "dropdown with target",
			items: "- type: dropdown\n  label: More\n  to: /more\n  items:\n    - label: Blog\n      to: /blog",
			want:  "must not have a to target",
		},
		{
			name:  "empty dropdown",
			items: "- type: dropdown\n  label: More",
			want:  "has no items",
		},
		{
			name:  "nested dropdown",
			items: "- type: dropdown\n  label: More\n  items:\n    - type: dropdown\n      label: Inner\n      items:\n        - label: Blog\n          to: /blog",
			want:  "nested dropdown",
		},
		{
			name:  "leaf with items",
			items: "- label: Blog\n  to: /blog\n  items:\n    - label: X\n      to: /x",
			want:  "not a dropdown",
		},
		{
			name:  "bad position",
			items: "- label: Blog\n  to: /blog\n  position: top",
			want:  "position must be left or right",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []NavItem
			err := yaml.Unmarshal([]byte(tt.items), &items)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Weaviate()
	cfg.BaseURL = "docs/"
	cfg.OnBrokenLinks = "explode"
	cfg.Presets[0].Options.Docs = &DocsOptions{RouteBasePath: "/developers/"}
	cfg.ThemeConfig.Prism.DarkTheme = "no-such-theme"

	err := Validate(cfg)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, err.Error(), `baseUrl "docs/" must begin with /`)
	assert.Contains(t, err.Error(), "onBrokenLinks")
	assert.Contains(t, err.Error(), `docs routeBasePath "/developers/"`)
	assert.Contains(t, err.Error(), "no-such-theme")
}

func TestValidateRejectsFooterDropdown(t *testing.T) {
	cfg := Weaviate()
	cfg.ThemeConfig.Footer.Links = []FooterColumn{{
		Title: "More",
		Items: []NavItem{Dropdown("Inner", Route("Blog", "/blog"))},
	}}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a link, not a dropdown")
}

func TestWeaviateRoundTripsThroughYAML(t *testing.T) {
	want := Weaviate()
	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

const minimalYAML = "title: Weaviate Docs\nurl: https://weaviate.io\nbaseUrl: /\n"

func TestBareClassicPresetEnablesPlugins(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "presets:\n  - classic\n"))
	require.NoError(t, err)

	docs, ok := cfg.Docs()
	require.True(t, ok)
	assert.Equal(t, "docs", docs.Path)
	assert.Equal(t, "docs", docs.RouteBasePath)

	blog, ok := cfg.Blog()
	require.True(t, ok)
	assert.Equal(t, "blog", blog.Path)
	assert.Equal(t, "blog", blog.RouteBasePath)

	assert.Empty(t, cfg.Theme().CustomCSS)
}

func TestPresetPluginDisabledWithFalse(t *testing.T) {
	src := minimalYAML + `presets:
  - - classic
    - docs: false
      blog:
        showReadingTime: true
`
	cfg, err := Parse([]byte(src))
	require.NoError(t, err)

	_, ok := cfg.Docs()
	assert.False(t, ok)
	blog, ok := cfg.Blog()
	require.True(t, ok)
	assert.True(t, blog.ShowReadingTime)

	data, err := yaml.Marshal(cfg.Presets)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docs: false")

	var got []Preset
	require.NoError(t, yaml.UnmarshalStrict(data, &got))
	if diff := cmp.Diff(cfg.Presets, got); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}

	_, err = Parse([]byte(minimalYAML + "presets:\n  - - classic\n    - docs: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs must be an options mapping or false")
}

func TestValidateDocLinksWithoutDocsPlugin(t *testing.T) {
	cfg := Weaviate()
	cfg.Presets[0].Options.Docs = &DocsOptions{Disabled: true}
	cfg.ThemeConfig.Footer.Links = append(cfg.ThemeConfig.Footer.Links, FooterColumn{
		Title: "Docs",
		Items: []NavItem{Doc("Getting started", "weaviate/index", "")},
	})

	err := Validate(cfg)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), `"Docs" links a doc but the docs plugin is disabled`)
	assert.Contains(t, err.Error(), `"Contributor Guide" links a doc`)
	assert.Contains(t, err.Error(), `"Getting started" links a doc`)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(file, []byte(siteYAML), 0644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "https://weaviate.io", cfg.URL)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestURLFor(t *testing.T) {
	tests := []struct {
		base, route, want string
	}{
		{"/", "/pricing", "/pricing"},
		{"/", "", "/"},
		{"/docs/", "/pricing", "/docs/pricing"},
		{"/docs/", "blog/post", "/docs/blog/post"},
	}
	for _, tt := range tests {
		cfg := SiteConfig{BaseURL: tt.base, URL: "https://weaviate.io"}
		assert.Equal(t, tt.want, cfg.URLFor(tt.route))
		assert.Equal(t, "https://weaviate.io"+tt.want, cfg.AbsoluteURL(tt.route))
	}
}

func TestLoadSidebars(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sidebars.yaml")
	content := `
docsSidebar:
  - weaviate/index
  - type: category
    label: Installation
    items:
      - weaviate/installation/docker
contributorSidebar:
  - contributor-guide/index
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	sb, err := LoadSidebars(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"weaviate/index", "weaviate/installation/docker"}, sb.DocIDs("docsSidebar"))

	name, ok := sb.Find("contributor-guide/index")
	require.True(t, ok)
	assert.Equal(t, "contributorSidebar", name)

	_, ok = sb.Find("nope")
	assert.False(t, ok)
}
