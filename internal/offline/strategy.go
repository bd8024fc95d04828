// Package offline serves the static site through a caching layer with two
// policies: navigation (HTML document) requests are network-first so a
// refresh picks up the latest page, everything else is cache-first for
// speed. When both the network and the cache miss, an empty 504 comes back.
package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CacheName versions the response cache; bumping it abandons old entries.
const CacheName = "scs-cache-v1"

// EntryDocument is the final navigation fallback when no exact cached page
// exists.
const EntryDocument = "/index.html"

// StaticAssets is the manifest pre-populated into the cache on warm-up.
var StaticAssets = []string{
	"/",
	"/index.html",
	"/home.html",
	"/complaints.html",
	"/register.html",
	"/admin.html",
	"/profile.html",
	"/admin-stats.html",
	"/style.css",
	"/app.js",
}

// Strategy fronts a static upstream with the two caching policies.
type Strategy struct {
	upstream   *url.URL
	cache      ResponseCache
	httpClient *http.Client
}

// NewStrategy creates a caching front for upstream.
func NewStrategy(upstream *url.URL, cache ResponseCache) *Strategy {
	return &Strategy{
		upstream:   upstream,
		cache:      cache,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Warm pre-populates the cache with the static asset manifest. It fails on
// the first asset that cannot be fetched, like an install step would.
func (s *Strategy) Warm(ctx context.Context) error {
	for _, path := range StaticAssets {
		resp, err := s.fetch(ctx, path)
		if err != nil {
			return fmt.Errorf("warm %s: %w", path, err)
		}
		if err := s.cache.Put(ctx, path, resp); err != nil {
			return fmt.Errorf("cache %s: %w", path, err)
		}
	}
	logrus.WithField("assets", len(StaticAssets)).Info("Offline cache warmed")
	return nil
}

// isNavigation classifies a request as a top-level document load: a GET
// whose Accept header asks for HTML.
func isNavigation(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}

func (s *Strategy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	ctx := r.Context()
	if isNavigation(r) {
		s.serveNavigation(ctx, w, key)
		return
	}
	s.serveAsset(ctx, w, key)
}

// serveNavigation is network-first: a fresh response is cached and returned;
// on network failure the exact cached page is served, then the entry
// document, then an empty 504.
func (s *Strategy) serveNavigation(ctx context.Context, w http.ResponseWriter, key string) {
	resp, err := s.fetch(ctx, key)
	if err == nil {
		if putErr := s.cache.Put(ctx, key, resp); putErr != nil {
			logrus.WithField("error", putErr.Error()).Warn("Failed to cache navigation response")
		}
		write(w, resp, "MISS")
		return
	}
	if cached, ok, _ := s.cache.Get(ctx, key); ok {
		write(w, cached, "HIT")
		return
	}
	if cached, ok, _ := s.cache.Get(ctx, EntryDocument); ok {
		write(w, cached, "FALLBACK")
		return
	}
	gatewayTimeout(w)
}

// serveAsset is cache-first: a hit short-circuits; a miss goes to the
// network and same-origin responses are stored before returning. Cache and
// network both failing yields an empty 504.
func (s *Strategy) serveAsset(ctx context.Context, w http.ResponseWriter, key string) {
	if cached, ok, _ := s.cache.Get(ctx, key); ok {
		write(w, cached, "HIT")
		return
	}
	resp, err := s.fetch(ctx, key)
	if err != nil {
		gatewayTimeout(w)
		return
	}
	if putErr := s.cache.Put(ctx, key, resp); putErr != nil {
		logrus.WithField("error", putErr.Error()).Warn("Failed to cache asset response")
	}
	write(w, resp, "MISS")
}

// fetch retrieves key from the upstream origin. Any HTTP response counts as
// success; only transport failures are errors, mirroring how a page fetch
// behaves.
func (s *Strategy) fetch(ctx context.Context, key string) (*CachedResponse, error) {
	target := *s.upstream
	parsed, err := url.Parse(key)
	if err != nil {
		return nil, err
	}
	target.Path = parsed.Path
	target.RawQuery = parsed.RawQuery
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &CachedResponse{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

func write(w http.ResponseWriter, resp *CachedResponse, cacheState string) {
	for k, vals := range resp.Header {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

func gatewayTimeout(w http.ResponseWriter) {
	w.WriteHeader(http.StatusGatewayTimeout)
}
