package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xcoinlabs/xcoin/internal/server/waitlist"
)

func buildRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(s.requestLogger)

	// Health/info
	r.Get("/healthz", healthzHandler)
	r.Get("/api/v1/server-info", s.serverInfoHandler)

	// Waitlist
	r.Method(http.MethodPost, "/api/waitlist", waitlist.NewHandler(s.waitlistRecorder(), s.logger))

	// Crawlers
	r.Get("/sitemap.xml", s.sitemapHandler)
	r.Get("/robots.txt", s.robotsHandler)

	// Static assets
	r.Get("/assets/site.css", assetHandler("text/css; charset=utf-8", siteCSS))
	r.Get("/assets/site.js", assetHandler("application/javascript; charset=utf-8", siteJS))

	// Pages
	r.Get("/", s.pageHandler)
	r.Get("/{slug}", s.pageHandler)
	r.Get("/chart.svg", s.chartHandler)
	r.Get("/{slug}/chart.svg", s.chartHandler)

	r.NotFound(s.notFoundHandler)

	return r
}
