package content

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/semi-technologies/weaviate-io/config"
)

const frontMatterDelim = "---"

type frontMatter struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Slug         string   `yaml:"slug"`
	Date         string   `yaml:"date"`
	Authors      []string `yaml:"authors"`
	Tags         []string `yaml:"tags"`
	SidebarLabel string   `yaml:"sidebar_label"`
}

// splitFrontMatter separates a leading YAML block delimited by "---" lines
// from the markdown body. Files without a leading delimiter have no front
// matter.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter

	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return fm, []byte(text), nil
	}

	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim+"\n")
	var head, body string
	switch {
	case strings.HasPrefix(rest, frontMatterDelim+"\n"):
		body = rest[len(frontMatterDelim)+1:]
	case rest == frontMatterDelim:
	case end >= 0:
		head, body = rest[:end], rest[end+len(frontMatterDelim)+2:]
	case strings.HasSuffix(rest, "\n"+frontMatterDelim):
		head = strings.TrimSuffix(rest, "\n"+frontMatterDelim)
	default:
		return fm, nil, errors.New("front matter is not terminated")
	}

	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return fm, nil, errors.Wrap(err, "error parsing frontmatter")
	}
	return fm, []byte(body), nil
}

// linkResolver rewrites a markdown link destination. It returns the new
// destination and whether the link should be rewritten.
type linkResolver func(dest string) (string, bool)

type renderer struct {
	highlighter *Highlighter
	links       linkResolver
}

func (r renderer) render(md []byte) (template.HTML, error) {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	var hookErr error
	opts := mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			switch n := node.(type) {
			case *ast.CodeBlock:
				if r.highlighter == nil {
					return ast.GoToNext, false
				}
				if err := r.highlighter.Highlight(w, string(n.Literal), infoLanguage(n.Info)); err != nil && hookErr == nil {
					hookErr = err
				}
				return ast.GoToNext, true
			case *ast.Link:
				if entering && r.links != nil {
					if dest, ok := r.links(string(n.Destination)); ok {
						n.Destination = []byte(dest)
					}
				}
			}
			return ast.GoToNext, false
		},
	}

	out := markdown.ToHTML(md, p, mdhtml.NewRenderer(opts))
	if hookErr != nil {
		return "", hookErr
	}
	return template.HTML(bytes.TrimSpace(out)), nil
}

func infoLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func wordCount(md []byte) int {
	return len(strings.Fields(string(md)))
}

// Page is a standalone markdown page outside the docs and blog plugins.
type Page struct {
	Title       string
	Description string
	HTML        template.HTML
}

// RenderPage renders a markdown page with optional front matter.
func RenderPage(src []byte, prism config.Prism) (Page, error) {
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return Page{}, err
	}
	html, err := renderer{highlighter: NewHighlighter(prism)}.render(body)
	if err != nil {
		return Page{}, err
	}
	return Page{Title: fm.Title, Description: fm.Description, HTML: html}, nil
}
