package content

import (
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/semi-technologies/weaviate-io/config"
	"github.com/semi-technologies/weaviate-io/logging"
)

// Doc is one page of the docs plugin.
type Doc struct {
	ID          string
	Title       string
	Label       string
	Description string
	Permalink   string
	EditURL     string
	SourcePath  string
	SidebarID   string
	HTML        template.HTML

	body []byte
}

// Post is one blog entry.
type Post struct {
	Slug        string
	Title       string
	Description string
	Permalink   string
	EditURL     string
	SourcePath  string
	Date        time.Time
	Authors     []string
	Tags        []string
	ReadingTime int
	HTML        template.HTML
}

// BrokenLink is a relative markdown link whose target document does not exist.
type BrokenLink struct {
	Source string
	Target string
}

// Tree holds all content of a site, rendered to HTML.
type Tree struct {
	docs        map[string]*Doc
	docOrder    []string
	posts       []*Post
	sidebars    config.Sidebars
	brokenLinks []BrokenLink
}

const wordsPerMinute = 200

// Load reads the docs and blog directories under root and renders every
// markdown file. A missing content directory yields an empty section.
func Load(root string, cfg config.SiteConfig) (*Tree, error) {
	logger := logging.WithComponent("content")
	t := &Tree{docs: map[string]*Doc{}}
	hl := NewHighlighter(cfg.ThemeConfig.Prism)

	if docs, ok := cfg.Docs(); ok {
		if err := t.loadDocs(root, cfg, docs, hl); err != nil {
			return nil, err
		}
		logger.Debug().Int("docs", len(t.docOrder)).Msg("docs loaded")
	}

	if blog, ok := cfg.Blog(); ok {
		if err := t.loadPosts(root, cfg, blog, hl); err != nil {
			return nil, err
		}
		logger.Debug().Int("posts", len(t.posts)).Msg("blog loaded")
	}

	if len(t.brokenLinks) > 0 {
		switch cfg.OnBrokenMarkdownLinks {
		case config.BrokenLinksThrow:
			b := t.brokenLinks[0]
			return nil, errors.Errorf("%d broken markdown link(s), first: %s links to %s", len(t.brokenLinks), b.Source, b.Target)
		case config.BrokenLinksIgnore:
		default:
			for _, b := range t.brokenLinks {
				logger.Warn().Str("source", b.Source).Str("target", b.Target).Msg("broken markdown link")
			}
		}
	}

	return t, nil
}

func (t *Tree) loadDocs(root string, cfg config.SiteConfig, opts config.DocsOptions, hl *Highlighter) error {
	dir := filepath.Join(root, opts.Path)
	files, err := markdownFiles(dir)
	if err != nil {
		return err
	}
	if files == nil {
		logger := logging.WithComponent("content")
		logger.Warn().Str("dir", dir).Msg("docs directory not found")
	}

	type pending struct {
		doc *Doc
		rel string
	}
	var all []pending
	for _, rel := range files {
		src, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			return errors.WithStack(err)
		}
		fm, body, err := splitFrontMatter(src)
		if err != nil {
			return errors.Wrapf(err, "doc %s", rel)
		}

		id := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		doc := &Doc{
			ID:          id,
			Title:       fm.Title,
			Label:       fm.SidebarLabel,
			Description: fm.Description,
			Permalink:   cfg.URLFor(path.Join(opts.RouteBasePath, docRoute(id))),
			SourcePath:  filepath.Join(opts.Path, rel),
			body:        body,
		}
		if doc.Title == "" {
			doc.Title = TitleFromID(id)
		}
		if doc.Label == "" {
			doc.Label = doc.Title
		}
		if opts.EditURL != "" {
			doc.EditURL = strings.TrimSuffix(opts.EditURL, "/") + "/" + path.Join(opts.Path, filepath.ToSlash(rel))
		}
		t.docs[id] = doc
		t.docOrder = append(t.docOrder, id)
		all = append(all, pending{doc: doc, rel: rel})
	}

	if opts.SidebarPath != "" {
		sbFile := filepath.Join(root, opts.SidebarPath)
		if _, err := os.Stat(sbFile); err == nil {
			sb, err := config.LoadSidebars(sbFile)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(sb))
			for name := range sb {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, id := range sb.DocIDs(name) {
					if _, ok := t.docs[id]; !ok {
						return errors.Errorf("sidebar %q references unknown doc id %q", name, id)
					}
				}
			}
			t.sidebars = sb
		}
	}

	for _, p := range all {
		if name, ok := t.sidebars.Find(p.doc.ID); ok {
			p.doc.SidebarID = name
		}
		r := renderer{highlighter: hl, links: t.docLinkResolver(p.doc)}
		p.doc.HTML, err = r.render(p.doc.body)
		if err != nil {
			return errors.Wrapf(err, "render doc %s", p.rel)
		}
		p.doc.body = nil
	}

	return nil
}

// docLinkResolver rewrites relative links to other markdown files into the
// permalink of the target doc.
func (t *Tree) docLinkResolver(from *Doc) linkResolver {
	return func(dest string) (string, bool) {
		if strings.Contains(dest, "://") || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
			return "", false
		}
		target, fragment, _ := strings.Cut(dest, "#")
		if !strings.HasSuffix(target, ".md") {
			return "", false
		}
		id := path.Clean(path.Join(path.Dir(from.ID), strings.TrimSuffix(target, ".md")))
		doc, ok := t.docs[id]
		if !ok {
			t.brokenLinks = append(t.brokenLinks, BrokenLink{Source: from.SourcePath, Target: dest})
			return "", false
		}
		if fragment != "" {
			return doc.Permalink + "#" + fragment, true
		}
		return doc.Permalink, true
	}
}

func (t *Tree) loadPosts(root string, cfg config.SiteConfig, opts config.BlogOptions, hl *Highlighter) error {
	dir := filepath.Join(root, opts.Path)
	files, err := markdownFiles(dir)
	if err != nil {
		return err
	}

	r := renderer{highlighter: hl}
	seen := map[string]string{}
	for _, rel := range files {
		src, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			return errors.WithStack(err)
		}
		fm, body, err := splitFrontMatter(src)
		if err != nil {
			return errors.Wrapf(err, "post %s", rel)
		}

		name := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		name = strings.TrimSuffix(name, "/index")
		date, slug := splitDatePrefix(path.Base(name))

		post := &Post{
			Slug:        slug,
			Title:       fm.Title,
			Description: fm.Description,
			SourcePath:  filepath.Join(opts.Path, rel),
			Date:        date,
			Authors:     fm.Authors,
			Tags:        fm.Tags,
		}
		if fm.Slug != "" {
			post.Slug = strings.Trim(fm.Slug, "/")
		}
		if fm.Date != "" {
			d, err := parseDate(fm.Date)
			if err != nil {
				return errors.Wrapf(err, "post %s", rel)
			}
			post.Date = d
		}
		if post.Title == "" {
			post.Title = TitleFromID(post.Slug)
		}
		if other, dup := seen[post.Slug]; dup {
			return errors.Errorf("posts %s and %s share slug %q", other, rel, post.Slug)
		}
		seen[post.Slug] = rel

		post.Permalink = cfg.URLFor(path.Join(opts.RouteBasePath, post.Slug))
		if opts.EditURL != "" {
			post.EditURL = strings.TrimSuffix(opts.EditURL, "/") + "/" + path.Join(opts.Path, filepath.ToSlash(rel))
		}
		if opts.ShowReadingTime {
			post.ReadingTime = readingTime(body)
		}
		post.HTML, err = r.render(body)
		if err != nil {
			return errors.Wrapf(err, "render post %s", rel)
		}
		t.posts = append(t.posts, post)
	}

	sort.SliceStable(t.posts, func(i, j int) bool {
		if !t.posts[i].Date.Equal(t.posts[j].Date) {
			return t.posts[i].Date.After(t.posts[j].Date)
		}
		return t.posts[i].Slug < t.posts[j].Slug
	})
	return nil
}

// Doc returns the doc with the given id.
func (t *Tree) Doc(id string) (*Doc, bool) {
	d, ok := t.docs[id]
	return d, ok
}

// DocPermalink resolves a doc id to its URL.
func (t *Tree) DocPermalink(id string) (string, bool) {
	d, ok := t.docs[id]
	if !ok {
		return "", false
	}
	return d.Permalink, true
}

// DocLabel returns the sidebar label of a doc, or the id when unknown.
func (t *Tree) DocLabel(id string) string {
	if d, ok := t.docs[id]; ok {
		return d.Label
	}
	return id
}

// Docs returns every doc in path order.
func (t *Tree) Docs() []*Doc {
	out := make([]*Doc, 0, len(t.docOrder))
	for _, id := range t.docOrder {
		out = append(out, t.docs[id])
	}
	return out
}

// Posts returns blog posts, newest first.
func (t *Tree) Posts() []*Post {
	return t.posts
}

func (t *Tree) Sidebars() config.Sidebars {
	return t.sidebars
}

func (t *Tree) BrokenLinks() []BrokenLink {
	return t.brokenLinks
}

// markdownFiles lists .md files below dir relative to it, sorted. It returns
// nil without error when dir does not exist.
func markdownFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// docRoute drops a trailing "index" segment so "weaviate/index" is served at
// "weaviate".
func docRoute(id string) string {
	if id == "index" {
		return ""
	}
	return strings.TrimSuffix(id, "/index")
}

// TitleFromID derives a title from the last meaningful path segment of id.
func TitleFromID(id string) string {
	name := path.Base(docRoute(id))
	if name == "." || name == "/" || name == "" {
		name = "index"
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.Errorf("cannot parse date %q, use YYYY-MM-DD or RFC3339", s)
}

// splitDatePrefix splits "2022-11-01-hello-world" into its date and "hello-world".
func splitDatePrefix(name string) (time.Time, string) {
	const layout = "2006-01-02"
	if len(name) > len(layout)+1 && name[len(layout)] == '-' {
		if d, err := time.Parse(layout, name[:len(layout)]); err == nil {
			return d, name[len(layout)+1:]
		}
	}
	return time.Time{}, name
}

func readingTime(body []byte) int {
	minutes := (wordCount(body) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
