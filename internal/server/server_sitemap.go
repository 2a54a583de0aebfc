package server

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/temoto/robotstxt"

	"github.com/xcoinlabs/xcoin/internal/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority,omitempty"`
}

func (s *Server) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	body, err := buildSitemap(s.baseURL(r), s.site.Pages())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "build sitemap", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func buildSitemap(base string, pages []content.Page) ([]byte, error) {
	set := sitemapURLSet{XMLNS: sitemapNS}
	for _, p := range pages {
		priority := "0.8"
		if p.Slug == "" {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(base, p.Path()), Priority: priority})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// baseURL prefers the configured base URL and falls back to the request host.
func (s *Server) baseURL(r *http.Request) string {
	if base := strings.TrimSpace(s.site.Site.BaseURL); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *Server) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(s.robots)
}

// buildRobots renders robots.txt for site and checks that crawlers can
// still reach the home page with it.
func buildRobots(site content.Site) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range site.Robots.Disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}
	if base := strings.TrimSpace(site.BaseURL); base != "" {
		fmt.Fprintf(&b, "\nSitemap: %s\n", absoluteURL(base, "/sitemap.xml"))
	}

	data, err := robotstxt.FromBytes(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parse generated robots.txt: %w", err)
	}
	if !data.TestAgent("/", "*") {
		return nil, fmt.Errorf("robots.txt disallows the home page")
	}
	return b.Bytes(), nil
}
