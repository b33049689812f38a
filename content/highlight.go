package content

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/config"
)

// Highlighter renders fenced code blocks with CSS classes. Colors come from
// the stylesheet produced by CSS.
type Highlighter struct {
	prism     config.Prism
	formatter *chromahtml.Formatter
}

func NewHighlighter(prism config.Prism) *Highlighter {
	return &Highlighter{
		prism:     prism,
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4)),
	}
}

func (h *Highlighter) Highlight(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return errors.Wrapf(err, "tokenise %s code block", lang)
	}
	return errors.WithStack(h.formatter.Format(w, h.style(h.prism.Theme), it))
}

// CSS returns the stylesheet for highlighted code: the light theme by
// default and the dark theme under prefers-color-scheme: dark.
func (h *Highlighter) CSS() ([]byte, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style(h.prism.Theme)); err != nil {
		return nil, errors.WithStack(err)
	}
	if h.prism.DarkTheme != "" {
		buf.WriteString("@media (prefers-color-scheme: dark) {\n")
		if err := h.formatter.WriteCSS(&buf, h.style(h.prism.DarkTheme)); err != nil {
			return nil, errors.WithStack(err)
		}
		buf.WriteString("}\n")
	}
	return buf.Bytes(), nil
}

func (h *Highlighter) style(name string) *chroma.Style {
	if name == "" {
		return styles.Fallback
	}
	return styles.Get(name)
}
