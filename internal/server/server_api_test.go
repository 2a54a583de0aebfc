package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temoto/robotstxt"
)

func TestPagesRender(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	cases := []struct {
		path string
		want []string
	}{
		{"/", []string{
			"<title>Xcoin - The quantum-safe DAG</title>",
			"Money that outlives the quantum era",
			`with a <a href="/technology#dag" class="inline-link">DAG</a>, proves`,
			`<a href="/governance" class="inline-link">XXX DAO</a>`,
			`class="testimonial"`,
			`id="waitlist"`,
			"&copy; 2026 Xcoin",
		}},
		{"/faq", []string{
			"<title>FAQ | Xcoin</title>",
			`The <a href="/governance" class="inline-link">XXX DAO</a>. Any holder`,
			`and the <a href="/governance#voting" class="inline-link">DAO</a> ratifies`,
			`<a href="/technology#zk-starks" class="inline-link">zk-STARKs</a> need no trusted setup`,
			`a <a href="/technology#zk-stark" class="inline-link">zk-STARK</a> stays secure`,
			`aria-current="page"`,
		}},
		{"/tokenomics", []string{"<svg", "stroke-dasharray", "Community &amp; ecosystem", "<strong>40%</strong>", `data-src="/tokenomics/chart.svg"`}},
		{"/crowdfunding", []string{"$3,475,000", "$5,000,000", "4,182 backers", `style="width: 69.5%"`, "tier featured"}},
		{"/compare", []string{"<th>Bitcoin</th>", "<td>DAG</td>"}},
		{"/technology", []string{"<strong>two earlier transactions</strong>", `target="_blank" rel="noopener noreferrer"`}},
	}
	for _, tc := range cases {
		resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+tc.path, nil)
		body := readBody(t, resp)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d body=%s", tc.path, resp.StatusCode, body)
		}
		if got := resp.Header.Get("Content-Type"); got != "text/html; charset=utf-8" {
			t.Fatalf("GET %s: content-type %q", tc.path, got)
		}
		for _, want := range tc.want {
			if !strings.Contains(body, want) {
				t.Fatalf("GET %s: body missing %q\n%s", tc.path, want, body)
			}
		}
	}
}

func TestFAQSearchMatchesQuestionOrAnswer(t *testing.T) {
	ts, s := newTestHTTPServer(t)

	body := readBody(t, mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/faq?q=whitepaper", nil))
	if !strings.Contains(body, "Can I get a refund?") {
		t.Fatalf("search result missing refund question:\n%s", body)
	}
	if strings.Contains(body, "What is Xcoin?") {
		t.Fatalf("search result contains unrelated question:\n%s", body)
	}
	if !strings.Contains(body, `id="faq-5"`) || strings.Contains(body, `id="faq-1"`) {
		t.Fatalf("filtered item must keep its unfiltered id:\n%s", body)
	}
	if !strings.Contains(body, `value="whitepaper"`) {
		t.Fatalf("search box does not keep the query:\n%s", body)
	}

	body = readBody(t, mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/faq?q=zzzzqqq", nil))
	if !strings.Contains(body, "No questions match") {
		t.Fatalf("expected empty search message:\n%s", body)
	}
	if s.pages.Len() != 0 {
		t.Fatalf("search responses must not be cached, cache has %d entries", s.pages.Len())
	}
}

func TestPageCache(t *testing.T) {
	ts, s := newTestHTTPServer(t)

	first := readBody(t, mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/faq", nil))
	if s.pages.Len() != 1 {
		t.Fatalf("cache entries after first request: got %d want 1", s.pages.Len())
	}
	cached, ok := s.pages.Get("/faq")
	if !ok || string(cached) != first {
		t.Fatalf("cached body does not match response")
	}
	second := readBody(t, mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/faq", nil))
	if first != second {
		t.Fatalf("cached response differs from first response")
	}
}

func TestPageCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTTL = 0
	s := newTestServer(t, cfg)
	if s.pages != nil {
		t.Fatalf("expected nil page cache when ttl is 0")
	}
	rec := doRequest(s, http.MethodGet, "/faq", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if s.pages.Len() != 0 {
		t.Fatalf("disabled cache reports %d entries", s.pages.Len())
	}
}

func TestUnknownPageIsNotFound(t *testing.T) {
	ts, _ := newTestHTTPServer(t)
	for _, path := range []string{"/does-not-exist", "/a/b/c", "/faq/chart.svg"} {
		resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+path, nil)
		body := readBody(t, resp)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("GET %s: status got %d want 404", path, resp.StatusCode)
		}
		if path != "/faq/chart.svg" && !strings.Contains(body, "Page not found") {
			t.Fatalf("GET %s: missing not found page:\n%s", path, body)
		}
	}
}

func TestChartSVG(t *testing.T) {
	ts, _ := newTestHTTPServer(t)
	resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/tokenomics/chart.svg", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d body=%s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/svg+xml" {
		t.Fatalf("content-type: got %q", got)
	}
	if got := strings.Count(body, "<circle"); got != 5 {
		t.Fatalf("circle count: got %d want 5", got)
	}
}

func TestSitemap(t *testing.T) {
	ts, s := newTestHTTPServer(t)
	resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/sitemap.xml", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing xml header:\n%s", body)
	}
	for _, want := range []string{
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		"<loc>https://xcoin.example/</loc>",
		"<priority>1.0</priority>",
		"<loc>https://xcoin.example/faq</loc>",
		"<loc>https://xcoin.example/tokenomics</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, body)
		}
	}
	if got := strings.Count(body, "<url>"); got != len(s.site.Pages()) {
		t.Fatalf("sitemap url count: got %d want %d", got, len(s.site.Pages()))
	}
}

func TestSitemapFallsBackToRequestHost(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("version: 1\nname: Xcoin\n"), 0o644); err != nil {
		t.Fatalf("write site: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ContentDir = dir
	s := newTestServer(t, cfg)

	rec := doRequest(s, http.MethodGet, "/sitemap.xml", "")
	if !strings.Contains(rec.Body.String(), "<loc>http://example.com/faq</loc>") {
		t.Fatalf("expected request host in sitemap:\n%s", rec.Body.String())
	}
	if strings.Contains(string(s.robots), "Sitemap:") {
		t.Fatalf("robots.txt must not advertise a relative sitemap:\n%s", s.robots)
	}
}

func TestBaseURLOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://staging.xcoin.example/"
	s := newTestServer(t, cfg)

	rec := doRequest(s, http.MethodGet, "/faq", "")
	if !strings.Contains(rec.Body.String(), `<link rel="canonical" href="https://staging.xcoin.example/faq" />`) {
		t.Fatalf("canonical link not using override:\n%s", rec.Body.String())
	}
	if !strings.Contains(string(s.robots), "Sitemap: https://staging.xcoin.example/sitemap.xml") {
		t.Fatalf("robots not using override:\n%s", s.robots)
	}
}

func TestRobots(t *testing.T) {
	ts, _ := newTestHTTPServer(t)
	resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/robots.txt", nil)
	body := readBody(t, resp)
	if !strings.Contains(body, "Disallow: /api/\n") || !strings.Contains(body, "Sitemap: https://xcoin.example/sitemap.xml\n") {
		t.Fatalf("unexpected robots.txt:\n%s", body)
	}

	data, err := robotstxt.FromString(body)
	if err != nil {
		t.Fatalf("parse robots: %v", err)
	}
	if !data.TestAgent("/faq", "Googlebot") {
		t.Fatalf("robots must allow /faq")
	}
	if data.TestAgent("/api/waitlist", "Googlebot") {
		t.Fatalf("robots must disallow /api/waitlist")
	}
}

func TestHealthzAndServerInfo(t *testing.T) {
	ts, s := newTestHTTPServer(t)

	resp := mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/healthz", nil)
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("healthz: status %d body=%s", resp.StatusCode, body)
	}

	resp = mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/api/v1/server-info", nil)
	defer resp.Body.Close()
	var info serverInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode server info: %v", err)
	}
	if info.Name != "Xcoin" || info.APIVersion != 1 || info.Version == "" || info.Pages != len(s.site.Pages()) {
		t.Fatalf("unexpected server info: %+v", info)
	}
}

func TestWaitlistEndpoint(t *testing.T) {
	ts, s := newTestHTTPServer(t)

	resp := mustRequest(t, ts.Client(), http.MethodPost, ts.URL+"/api/waitlist", map[string]string{"email": "hal@example.com"})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"message":"Successfully joined waitlist"`) {
		t.Fatalf("valid signup: status %d body=%s", resp.StatusCode, body)
	}

	resp = mustRequest(t, ts.Client(), http.MethodPost, ts.URL+"/api/waitlist", map[string]string{"email": "nope"})
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, `"error":"Valid email is required"`) {
		t.Fatalf("invalid signup: status %d body=%s", resp.StatusCode, body)
	}

	rec := doRequest(s, http.MethodPost, "/api/waitlist", `{"email":`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"error":"Failed to join waitlist"`) {
		t.Fatalf("malformed signup: status %d body=%s", rec.Code, rec.Body.String())
	}

	resp = mustRequest(t, ts.Client(), http.MethodGet, ts.URL+"/api/waitlist", nil)
	_ = readBody(t, resp)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET waitlist: status got %d want 405", resp.StatusCode)
	}

	entries, err := s.db.ListWaitlistEntries(context.Background())
	if err != nil {
		t.Fatalf("list waitlist entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Email != "hal@example.com" {
		t.Fatalf("unexpected stored entries: %+v", entries)
	}
}

func TestAssets(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	for path, contentType := range map[string]string{
		"/assets/site.css": "text/css; charset=utf-8",
		"/assets/site.js":  "application/javascript; charset=utf-8",
	} {
		rec := doRequest(s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != contentType {
			t.Fatalf("GET %s: status %d content-type %q", path, rec.Code, rec.Header().Get("Content-Type"))
		}
	}
}

func TestTrailingSlashRedirects(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	rec := doRequest(s, http.MethodGet, "/faq/", "")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusMovedPermanently)
	}
	if got := rec.Header().Get("Location"); !strings.HasSuffix(got, "/faq") {
		t.Fatalf("location: got %q want suffix /faq", got)
	}
}

func TestNewRejectsInvalidContentDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("slug: Bad\n"), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ContentDir = dir
	_, err := New(cfg, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "load content") {
		t.Fatalf("expected load content error, got %v", err)
	}
}
