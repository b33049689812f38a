// Package nav resolves the navbar and footer items of a site config into
// concrete links and renders them to HTML.
package nav

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/config"
)

// DocResolver maps a doc id to its permalink.
type DocResolver interface {
	DocPermalink(id string) (string, bool)
}

// Node is a resolved navigation entry. Dropdown nodes have children and no
// Href.
type Node struct {
	Label    string
	Href     string
	Kind     config.TargetKind
	External bool
	Dropdown bool
	Active   bool
	Position config.Position
	Children []Node
}

type Column struct {
	Title string
	Items []Node
}

// Resolve turns items into nodes, preserving order. Doc ids are resolved
// through docs; an unknown id is an error.
func Resolve(cfg config.SiteConfig, items []config.NavItem, docs DocResolver) ([]Node, error) {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		n, err := resolveItem(cfg, item, docs)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ResolveFooter resolves every footer column.
func ResolveFooter(cfg config.SiteConfig, docs DocResolver) ([]Column, error) {
	cols := make([]Column, 0, len(cfg.ThemeConfig.Footer.Links))
	for _, col := range cfg.ThemeConfig.Footer.Links {
		items, err := Resolve(cfg, col.Items, docs)
		if err != nil {
			return nil, errors.Wrapf(err, "footer column %q", col.Title)
		}
		cols = append(cols, Column{Title: col.Title, Items: items})
	}
	return cols, nil
}

func resolveItem(cfg config.SiteConfig, item config.NavItem, docs DocResolver) (Node, error) {
	if err := item.Check(); err != nil {
		return Node{}, err
	}

	n := Node{Label: item.Label, Position: item.Position}
	if item.IsGroup() {
		n.Dropdown = true
		for _, child := range item.Items {
			c, err := resolveItem(cfg, child, docs)
			if err != nil {
				return Node{}, err
			}
			n.Children = append(n.Children, c)
		}
		return n, nil
	}

	n.Kind = item.Target.Kind
	switch item.Target.Kind {
	case config.TargetRoute:
		n.Href = cfg.URLFor(item.Target.Value)
	case config.TargetDoc:
		if docs == nil {
			return Node{}, errors.Errorf("nav item %q links doc %q but no docs are loaded", item.Label, item.Target.Value)
		}
		href, ok := docs.DocPermalink(item.Target.Value)
		if !ok {
			return Node{}, errors.Errorf("nav item %q links unknown doc id %q", item.Label, item.Target.Value)
		}
		n.Href = href
	case config.TargetHref:
		n.Href = item.Target.Value
		n.External = isExternal(item.Target.Value)
		if !n.External {
			n.Href = cfg.URLFor(item.Target.Value)
		}
	}
	return n, nil
}

func isExternal(href string) bool {
	return strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:")
}

// InternalLinks lists every internal href in nodes, depth first.
func InternalLinks(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		if n.Dropdown {
			out = append(out, InternalLinks(n.Children)...)
			continue
		}
		if !n.External {
			out = append(out, n.Href)
		}
	}
	return out
}

// Split partitions nodes by position.
func Split(nodes []Node) (left, right []Node) {
	for _, n := range nodes {
		if n.Position == config.PositionRight {
			right = append(right, n)
		} else {
			left = append(left, n)
		}
	}
	return left, right
}

// MarkActive returns a copy of nodes where links to current, and the dropdowns
// containing them, are active. A link to home, the site root, is only active
// on home itself.
func MarkActive(nodes []Node, current, home string) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.Dropdown {
			n.Children = MarkActive(n.Children, current, home)
			n.Active = false
			for _, c := range n.Children {
				n.Active = n.Active || c.Active
			}
		} else {
			n.Active = !n.External && isUnder(current, n.Href, home)
		}
		out[i] = n
	}
	return out
}

func isUnder(current, href, home string) bool {
	if href == "/" || strings.TrimSuffix(href, "/") == strings.TrimSuffix(home, "/") {
		return strings.TrimSuffix(current, "/") == strings.TrimSuffix(href, "/")
	}
	return current == href || strings.HasPrefix(current, strings.TrimSuffix(href, "/")+"/")
}
