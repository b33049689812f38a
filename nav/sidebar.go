package nav

import (
	"html/template"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/config"
)

// SidebarDocs resolves doc ids referenced by sidebars.
type SidebarDocs interface {
	DocResolver
	DocLabel(id string) string
}

type SidebarEntry struct {
	Label    string
	Href     string
	Category bool
	Active   bool
	Items    []SidebarEntry
}

// ResolveSidebar turns sidebar items into entries. current marks the active
// doc; categories containing it are active too.
func ResolveSidebar(items []config.SidebarItem, docs SidebarDocs, current string) ([]SidebarEntry, error) {
	out := make([]SidebarEntry, 0, len(items))
	for _, it := range items {
		if it.IsCategory() {
			children, err := ResolveSidebar(it.Items, docs, current)
			if err != nil {
				return nil, err
			}
			e := SidebarEntry{Label: it.Label, Category: true, Items: children}
			for _, c := range children {
				e.Active = e.Active || c.Active
			}
			out = append(out, e)
			continue
		}
		href, ok := docs.DocPermalink(it.DocID)
		if !ok {
			return nil, errors.Errorf("sidebar links unknown doc id %q", it.DocID)
		}
		out = append(out, SidebarEntry{Label: docs.DocLabel(it.DocID), Href: href, Active: href == current})
	}
	return out, nil
}

const sidebarTemplate = `<ul class="menu__list">
<%= for (e) in entries { %><%= if (e.Category) { %>  <li class="menu__list-item menu__category<%= if (e.Active) { %> menu__category--active<% } %>">
    <span class="menu__link menu__link--sublist"><%= e.Label %></span>
    <%= children(e.Items) %>
  </li>
<% } else { %>  <li class="menu__list-item"><a class="menu__link<%= if (e.Active) { %> menu__link--active<% } %>" href="<%= e.Href %>"><%= e.Label %></a></li>
<% } %><% } %></ul>
`

// RenderSidebar renders entries as nested lists.
func RenderSidebar(entries []SidebarEntry) (template.HTML, error) {
	ctx := plush.NewContext()
	ctx.Set("entries", entries)
	ctx.Set("children", RenderSidebar)

	out, err := plush.Render(sidebarTemplate, ctx)
	if err != nil {
		return "", errors.Wrap(err, "render sidebar")
	}
	return template.HTML(out), nil
}
