// Package templates holds the default plush layouts and pages of the site.
package templates

import "embed"

//go:embed layouts/*.plush.html pages/*.plush.html content/*.plush.html
var FS embed.FS

const (
	BaseLayout   = "layouts/base.plush.html"
	NotFound     = "content/404.plush.html"
	DocPage      = "content/doc.plush.html"
	BlogList     = "content/blog_list.plush.html"
	BlogPost     = "content/blog_post.plush.html"
	MarkdownPage = "content/markdown.plush.html"
	PagesDir     = "pages"
)
