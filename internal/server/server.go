package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xcoinlabs/xcoin/internal/content"
	"github.com/xcoinlabs/xcoin/internal/server/waitlist"
	"github.com/xcoinlabs/xcoin/internal/store"
)

const (
	defaultAddr     = ":8080"
	defaultCacheTTL = 5 * time.Minute
	shutdownTimeout = 5 * time.Second
)

type Config struct {
	Addr string `yaml:"addr" json:"addr"`
	// ContentDir overlays YAML pages on top of the embedded content.
	ContentDir string `yaml:"content_dir" json:"content_dir"`
	// DBPath enables sqlite persistence of waitlist signups.
	DBPath string `yaml:"db" json:"db"`
	// CacheTTL is how long rendered pages are kept. Zero disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
	// BaseURL overrides base_url from site.yaml.
	BaseURL      string `yaml:"base_url" json:"base_url"`
	MDNS         bool   `yaml:"mdns" json:"mdns"`
	MDNSInstance string `yaml:"mdns_instance" json:"mdns_instance"`
}

func DefaultConfig() Config {
	return Config{
		Addr:     defaultAddr,
		CacheTTL: defaultCacheTTL,
	}
}

type Server struct {
	cfg    Config
	site   *content.Bundle
	db     *store.Store
	pages  *pageCache
	tmpl   *template.Template
	robots []byte
	logger *slog.Logger
	now    func() time.Time
}

// New loads content, opens the optional waitlist database and prepares
// templates. The caller must Close the returned server.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaultAddr
	}

	bundle, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		bundle.Site.BaseURL = base
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	robots, err := buildRobots(bundle.Site)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		site:   bundle,
		pages:  newPageCache(cfg.CacheTTL),
		tmpl:   tmpl,
		robots: robots,
		logger: logger,
		now:    time.Now,
	}

	if strings.TrimSpace(cfg.DBPath) != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open waitlist store: %w", err)
		}
		s.db = db
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Server) Handler() http.Handler {
	return buildRouter(s)
}

func (s *Server) waitlistRecorder() waitlist.Recorder {
	recs := waitlist.Recorders{waitlist.LogRecorder{Logger: s.logger}}
	if s.db != nil {
		recs = append(recs, waitlist.StoreRecorder{Store: s.db})
	}
	return recs
}

func Run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	s, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("close waitlist store", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopMDNS := func() {}
	if s.cfg.MDNS {
		stopMDNS = startMDNSAdvertiser(s.cfg.Addr, s.cfg.MDNSInstance, s.logger)
	}
	defer stopMDNS()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("xcoin site started", "addr", s.cfg.Addr, "pages", len(s.site.Pages()), "waitlist_db", s.cfg.DBPath != "")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		s.logger.Info("xcoin site stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		s.logger.Info("xcoin site stopped")
		return nil
	}
}
