package nav

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/config"
)

type side struct {
	Name  string
	Items []Node
}

const navbarTemplate = `<nav class="navbar" aria-label="Main">
  <div class="navbar__inner">
    <a class="navbar__brand" href="<%= home %>"><%= if (logo.Src != "") { %><img class="navbar__logo" src="<%= logoSrc %>" alt="<%= logo.Alt %>" /><% } %><%= if (title != "") { %><b class="navbar__title"><%= title %></b><% } %></a>
<%= for (s) in sides { %>    <div class="navbar__items navbar__items--<%= s.Name %>">
<%= for (item) in s.Items { %><%= if (item.Dropdown) { %>      <div class="navbar__item dropdown<%= if (item.Active) { %> dropdown--active<% } %>">
        <a class="navbar__link" href="#" aria-haspopup="true" aria-expanded="false"><%= item.Label %></a>
        <ul class="dropdown__menu">
<%= for (child) in item.Children { %>          <li><a class="dropdown__link<%= if (child.Active) { %> dropdown__link--active<% } %>" href="<%= child.Href %>"<%= if (child.External) { %> target="_blank" rel="noopener noreferrer"<% } %>><%= child.Label %></a></li>
<% } %>        </ul>
      </div>
<% } else { %>      <a class="navbar__item navbar__link<%= if (item.Active) { %> navbar__link--active<% } %>" href="<%= item.Href %>"<%= if (item.External) { %> target="_blank" rel="noopener noreferrer"<% } %>><%= item.Label %></a>
<% } %><% } %>    </div>
<% } %>  </div>
</nav>
`

const footerTemplate = `<footer class="footer footer--<%= style %>">
  <div class="container">
    <div class="footer__links">
<%= for (col) in columns { %>      <div class="footer__col">
        <div class="footer__title"><%= col.Title %></div>
        <ul class="footer__items">
<%= for (item) in col.Items { %>          <li class="footer__item"><a class="footer__link-item" href="<%= item.Href %>"<%= if (item.External) { %> target="_blank" rel="noopener noreferrer"<% } %>><%= item.Label %></a></li>
<% } %>        </ul>
      </div>
<% } %>    </div>
<%= if (copyright != "") { %>    <div class="footer__copyright"><%= copyright %></div>
<% } %>  </div>
</footer>
`

// RenderNavbar renders the navbar with the link for current marked active.
func RenderNavbar(cfg config.SiteConfig, nodes []Node, current string) (template.HTML, error) {
	left, right := Split(MarkActive(nodes, current, cfg.URLFor("/")))
	logo := cfg.ThemeConfig.Navbar.Logo

	ctx := plush.NewContext()
	ctx.Set("home", cfg.URLFor("/"))
	ctx.Set("title", cfg.ThemeConfig.Navbar.Title)
	ctx.Set("logo", logo)
	ctx.Set("logoSrc", assetURL(cfg, logo.Src))
	ctx.Set("sides", []side{{Name: "left", Items: left}, {Name: "right", Items: right}})

	out, err := plush.Render(navbarTemplate, ctx)
	if err != nil {
		return "", errors.Wrap(err, "render navbar")
	}
	return template.HTML(out), nil
}

// RenderFooter renders the footer columns. "{year}" in the copyright is
// replaced with year.
func RenderFooter(cfg config.SiteConfig, columns []Column, year int) (template.HTML, error) {
	footer := cfg.ThemeConfig.Footer
	style := footer.Style
	if style == "" {
		style = "light"
	}

	ctx := plush.NewContext()
	ctx.Set("style", style)
	ctx.Set("columns", columns)
	ctx.Set("copyright", strings.ReplaceAll(footer.Copyright, "{year}", strconv.Itoa(year)))

	out, err := plush.Render(footerTemplate, ctx)
	if err != nil {
		return "", errors.Wrap(err, "render footer")
	}
	return template.HTML(out), nil
}

// assetURL maps a path relative to the static directory onto the base URL.
func assetURL(cfg config.SiteConfig, src string) string {
	if src == "" || isExternal(src) {
		return src
	}
	return cfg.URLFor(src)
}
