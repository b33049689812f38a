package assets

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/config"
	"github.com/semi-technologies/weaviate-io/content"
)

type Kind int

const (
	Stylesheet Kind = iota + 1
	Script
	SourceMap
)

// File is a compiled asset. Path is the URL path it is served at.
type File struct {
	Path     string
	Kind     Kind
	Contents []byte
}

const (
	cssDir         = "assets/css"
	jsDir          = "assets/js"
	highlightSheet = "highlight.css"
)

// Compile bundles the theme stylesheet and the client modules of cfg with
// esbuild and adds the code highlighting stylesheet. Output names carry a
// content hash. Nothing is written to disk.
func Compile(root string, cfg config.SiteConfig) ([]File, error) {
	css, err := content.NewHighlighter(cfg.ThemeConfig.Prism).CSS()
	if err != nil {
		return nil, err
	}
	files := []File{{Path: cfg.URLFor(path.Join(cssDir, highlightSheet)), Kind: Stylesheet, Contents: css}}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if custom := cfg.Theme().CustomCSS; custom != "" {
		out, err := bundle(absRoot, []string{custom}, cssDir)
		if err != nil {
			return nil, errors.Wrapf(err, "bundle %s", custom)
		}
		files = append(files, publicFiles(cfg, absRoot, cssDir, out)...)
	}

	if len(cfg.ClientModules) > 0 {
		out, err := bundle(absRoot, cfg.ClientModules, jsDir)
		if err != nil {
			return nil, errors.Wrap(err, "bundle client modules")
		}
		files = append(files, publicFiles(cfg, absRoot, jsDir, out)...)
	}

	return files, nil
}

func bundle(absRoot string, entries []string, outDir string) ([]api.OutputFile, error) {
	result := api.Build(api.BuildOptions{
		EntryPoints:       entries,
		AbsWorkingDir:     absRoot,
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Engines: []api.Engine{
			{Name: api.EngineChrome, Version: "100"},
			{Name: api.EngineFirefox, Version: "100"},
			{Name: api.EngineSafari, Version: "15"},
			{Name: api.EngineEdge, Version: "100"},
		},
		Sourcemap:  api.SourceMapLinked,
		EntryNames: "[name]-[hash]",
		Write:      false,
		Outdir:     filepath.Join(absRoot, outDir),
	})

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%s:%d: %s", m.Location.File, m.Location.Line, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}
	return result.OutputFiles, nil
}

// publicFiles maps esbuild output under absRoot/outDir to URL paths. Source
// maps are listed after the files they describe.
func publicFiles(cfg config.SiteConfig, absRoot, outDir string, out []api.OutputFile) []File {
	var regular, maps []File
	base := filepath.Join(absRoot, outDir)
	for _, o := range out {
		rel, err := filepath.Rel(base, o.Path)
		if err != nil {
			rel = filepath.Base(o.Path)
		}
		f := File{Path: cfg.URLFor(path.Join(outDir, filepath.ToSlash(rel))), Contents: o.Contents}
		switch {
		case strings.EqualFold(filepath.Ext(o.Path), ".map"):
			f.Kind = SourceMap
			maps = append(maps, f)
		case strings.EqualFold(filepath.Ext(o.Path), ".css"):
			f.Kind = Stylesheet
			regular = append(regular, f)
		default:
			f.Kind = Script
			regular = append(regular, f)
		}
	}
	return append(regular, maps...)
}

// Paths returns the URL paths of files of the given kind, in order.
func Paths(files []File, kind Kind) []string {
	var out []string
	for _, f := range files {
		if f.Kind == kind {
			out = append(out, f.Path)
		}
	}
	return out
}
