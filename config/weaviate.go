package config

const (
	githubRepo = "https://github.com/semi-technologies/weaviate-io"
	cloudURL   = "https://console.semi.technology/"
	editURL    = "https://github.com/semi-technologies/weaviate-io/tree/main/"
)

// Weaviate returns the configuration of the Weaviate Docs site.
func Weaviate() SiteConfig {
	return SiteConfig{
		Title:                 "Weaviate Docs",
		Tagline:               "Vector Search Engine",
		URL:                   "https://weaviate.io",
		BaseURL:               "/",
		TrailingSlash:         false,
		OnBrokenLinks:         BrokenLinksWarn,
		OnBrokenMarkdownLinks: BrokenLinksWarn,
		Favicon:               "img/favicon.ico",
		OrganizationName:      "semi-technologies",
		ProjectName:           "weaviate-io",
		CustomFields: map[string]any{
			"weaviateVersion": "1.16.4",
		},
		Presets: []Preset{{
			Name: PresetClassic,
			Options: PresetOptions{
				Docs: &DocsOptions{
					SidebarPath:   "sidebars.yaml",
					EditURL:       editURL,
					Path:          "docs",
					RouteBasePath: "developers",
				},
				Blog: &BlogOptions{
					ShowReadingTime: true,
					EditURL:         editURL,
				},
				Theme: &ThemeOptions{
					CustomCSS: "src/css/custom.css",
				},
			},
		}},
		ThemeConfig: ThemeConfig{
			Navbar: Navbar{
				Logo: Logo{Alt: "Weaviate", Src: "img/site/logo.svg"},
				Items: []NavItem{
					Route("Pricing", "/pricing").At(PositionRight),
					Dropdown("Content",
						Route("Blog", "/blog"),
						Route("Podcast", "/podcast"),
						Href("Newsletter", "http://weaviate-newsletter.semi.technology/"),
					).At(PositionRight),
					Dropdown("Developers",
						Doc("Docs", "weaviate/index", "docsSidebar"),
						Doc("Contributor Guide", "contributor-guide/index", "contributorSidebar"),
						Href("Weaviate Cloud Service", cloudURL),
						Href("GitHub", githubRepo),
						Href("Slack", "https://join.slack.com/t/weaviate/shared_invite/zt-goaoifjr-o8FuVz9b1HLzhlUfyfddhw"),
					).At(PositionRight),
					Href("Weaviate Cloud Service", cloudURL).At(PositionRight),
				},
			},
			Footer: Footer{
				Style: "dark",
				Links: []FooterColumn{
					{
						Title: "Community",
						Items: []NavItem{
							Href("Stack Overflow", "https://stackoverflow.com/tags/weaviate/"),
							Href("Slack", "https://weaviate.slack.com/"),
							Href("Twitter", "https://twitter.com/weaviate_io"),
						},
					},
					{
						Title: "More",
						Items: []NavItem{
							Route("Blog", "/blog"),
							Href("GitHub", githubRepo),
						},
					},
				},
				Copyright: "Copyright © {year} Weaviate, Inc.",
			},
			Prism: Prism{
				Theme:               "github",
				DarkTheme:           "dracula",
				AdditionalLanguages: []string{"java"},
			},
		},
	}
}
