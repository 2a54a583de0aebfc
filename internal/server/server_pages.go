package server

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ncruces/go-strftime"

	"github.com/xcoinlabs/xcoin/internal/chart"
	"github.com/xcoinlabs/xcoin/internal/content"
)

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, ok := s.site.Page(slug)
	if !ok {
		s.notFoundHandler(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	cacheable := query == ""
	if cacheable {
		if body, ok := s.pages.Get(r.URL.Path); ok {
			writeHTML(w, http.StatusOK, body)
			return
		}
	}

	body, err := s.renderPage(page, query)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if cacheable {
		s.pages.Set(r.URL.Path, body)
	}
	writeHTML(w, http.StatusOK, body)
}

func (s *Server) renderPage(page content.Page, query string) ([]byte, error) {
	view, err := s.buildPageView(page, query)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	view := pageView{
		SiteName:    s.site.Site.Name,
		Title:       "Page not found | " + s.site.Site.Name,
		Nav:         navLinks(s.site.Site.Nav, ""),
		FooterText:  s.site.Site.Footer.Text,
		FooterLinks: navLinks(s.site.Site.Footer.Links, ""),
		Year:        strftime.Format("%Y", s.now()),
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "notfound", view); err != nil {
		s.logger.ErrorContext(r.Context(), "render not found page", "error", err)
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := s.site.Page(chi.URLParam(r, "slug"))
	if !ok || len(page.Allocations) == 0 {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderSVG(&buf, page.Allocations, chart.SVGOptions{Title: page.Title}); err != nil {
		s.logger.ErrorContext(r.Context(), "render chart", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
