package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const siteFile = "site.yaml"

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Bundle is the validated site definition plus all of its pages.
type Bundle struct {
	Site  Site
	pages map[string]Page
}

func NewBundle(site Site, pages ...Page) (*Bundle, error) {
	b := &Bundle{Site: site, pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if _, exists := b.pages[p.Slug]; exists {
			return nil, fmt.Errorf("duplicate page slug %q", p.Slug)
		}
		b.pages[p.Slug] = p
	}
	return b, nil
}

// Default returns the content shipped with the binary.
func Default() (*Bundle, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("open default content: %w", err)
	}
	return LoadFS(sub)
}

// Load reads the default content and overlays every YAML file found under
// dir. An overlay page replaces the default page with the same slug; an
// overlay site.yaml replaces the default site definition.
func Load(dir string) (*Bundle, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return b, nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat content dir %q: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("content dir %q is not a directory", dir)
	}

	site, pages, err := readFS(os.DirFS(dir), false)
	if err != nil {
		return nil, err
	}
	if site != nil {
		b.Site = *site
	}
	for _, p := range pages {
		b.pages[p.Slug] = p
	}
	return b, nil
}

// LoadFS reads a complete content tree: site.yaml plus one YAML file per page.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	site, pages, err := readFS(fsys, true)
	if err != nil {
		return nil, err
	}
	return NewBundle(*site, pages...)
}

func readFS(fsys fs.FS, requireSite bool) (*Site, []Page, error) {
	matches, err := doublestar.Glob(fsys, "**/*.{yaml,yml}")
	if err != nil {
		return nil, nil, fmt.Errorf("glob content files: %w", err)
	}
	sort.Strings(matches)

	var site *Site
	var pages []Page
	seen := map[string]string{}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, nil, fmt.Errorf("read content file %q: %w", name, err)
		}
		if path.Base(name) == siteFile {
			s, err := ParseSite(data, name)
			if err != nil {
				return nil, nil, err
			}
			site = &s
			continue
		}
		p, err := ParsePage(data, name)
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, nil, fmt.Errorf("page slug %q defined in both %q and %q", p.Slug, prev, name)
		}
		seen[p.Slug] = name
		pages = append(pages, p)
	}
	if site == nil && requireSite {
		return nil, nil, fmt.Errorf("content is missing %s", siteFile)
	}
	return site, pages, nil
}

// Page looks up a page by slug. The home page has the empty slug.
func (b *Bundle) Page(slug string) (Page, bool) {
	p, ok := b.pages[slug]
	return p, ok
}

// Pages returns all pages ordered by Order, then slug.
func (b *Bundle) Pages() []Page {
	out := make([]Page, 0, len(b.pages))
	for _, p := range b.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
