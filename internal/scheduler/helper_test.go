package scheduler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/flowmap/internal/config"
	"github.com/rohmanhakim/flowmap/internal/extractor"
	"github.com/rohmanhakim/flowmap/internal/fetcher"
	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/stretchr/testify/require"
)

// htmlPage renders a minimal page with the given title and hrefs
func htmlPage(title string, hrefs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body><nav>", title)
	for _, href := range hrefs {
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, href, href)
	}
	b.WriteString("</nav></body></html>")
	return b.String()
}

// testSite is an in-memory website served by httptest
type testSite struct {
	mu          sync.Mutex
	pages       map[string]string
	statuses    map[string]int
	raw         map[string][]byte
	handlers    map[string]http.HandlerFunc
	hits        map[string]int
	authHeaders []string
	server      *httptest.Server
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	site := &testSite{
		pages:    map[string]string{},
		statuses: map[string]int{},
		raw:      map[string][]byte{},
		handlers: map[string]http.HandlerFunc{},
		hits:     map[string]int{},
	}
	site.server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.server.Close)
	return site
}

func (s *testSite) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))
	status, hasStatus := s.statuses[r.URL.Path]
	body, hasPage := s.pages[r.URL.Path]
	raw, hasRaw := s.raw[r.URL.Path]
	handler, hasHandler := s.handlers[r.URL.Path]
	s.mu.Unlock()

	switch {
	case hasHandler:
		handler(w, r)
	case hasStatus:
		w.WriteHeader(status)
	case hasRaw:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(raw)
	case hasPage:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	default:
		http.NotFound(w, r)
	}
}

func (s *testSite) page(path string, title string, hrefs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = htmlPage(title, hrefs...)
}

func (s *testSite) status(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[path] = code
}

func (s *testSite) binary(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[path] = body
}

func (s *testSite) handle(path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = handler
}

func (s *testSite) url(path string) string {
	return s.server.URL + path
}

func (s *testSite) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *testSite) seenAuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders...)
}

// newTestConfig builds a config with fast timeouts; mods tweak the builder
func newTestConfig(t *testing.T, mods ...func(*config.Config) *config.Config) config.Config {
	t.Helper()
	builder := config.WithDefault().
		WithTimeout(2 * time.Second).
		WithCrawlTimeout(10 * time.Second).
		WithRandomSeed(42)
	for _, mod := range mods {
		builder = mod(builder)
	}
	cfg, err := builder.Build()
	require.NoError(t, err)
	return cfg
}

// newHTTPScheduler wires the real fetcher and extractor to sink
func newHTTPScheduler(t *testing.T, cfg config.Config, sink *recordingSink) *scheduler.Scheduler {
	t.Helper()
	htmlFetcher := fetcher.NewHtmlFetcher(sink, cfg.Timeout(), cfg.MaxBodyBytes())
	return scheduler.NewSchedulerWithDeps(cfg, sink, sink, htmlFetcher, extractor.NewDomExtractor())
}

