// Package service implements the bizdesk orchestrator that wires together
// configuration, the API client, the reference cache, validation, pricing
// and reporting. CLI commands, the gateway and the MCP server all go through
// it.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/buildinfo"
	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/config"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/redaction"
)

// Fallback names used when a sale's client or product cannot be resolved.
const (
	UnknownClient  = "Unknown Client"
	UnknownProduct = "Unknown Product"
)

// ErrCacheDisabled is returned by cache operations when the reference cache
// is turned off or could not be opened.
var ErrCacheDisabled = errors.New("reference cache is disabled")

// Options configures New.
type Options struct {
	// Home is the bizdesk home directory; cache.db lives there.
	Home   string
	Config *config.Config // nil means config.Default()
	Logger zerolog.Logger
	// Transport overrides the HTTP transport of the API client.
	Transport http.RoundTripper
}

// Service orchestrates all bizdesk operations.
type Service struct {
	Home   string
	Config *config.Config

	api   *api.Client
	cache *cache.DB
	log   zerolog.Logger
	now   func() time.Time
	mu    sync.Mutex // serialises cache writes
}

// New builds a Service. The reference cache is optional: when it cannot be
// opened the service logs a warning and runs without it.
func New(opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.RequireBaseURL(); err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	var extra []*regexp.Regexp
	if opts.Home != "" {
		patterns, err := redaction.LoadIgnore(filepath.Join(opts.Home, redaction.IgnoreFile))
		if err != nil {
			return nil, fmt.Errorf("service.New: %s: %w", redaction.IgnoreFile, err)
		}
		extra = patterns
	}

	client, err := api.New(api.Options{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.TimeoutDuration(),
		Compression: cfg.API.Compression,
		UserAgent:   buildinfo.UserAgent(),
		Logger:      opts.Logger,
		Transport:   opts.Transport,
		Redact:      extra,
	})
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	s := &Service{
		Home:   opts.Home,
		Config: cfg,
		api:    client,
		log:    opts.Logger,
		now:    time.Now,
	}

	if cfg.Cache.Enabled && opts.Home != "" {
		if db, err := openCache(opts.Home); err != nil {
			s.log.Warn().Err(err).Str("home", opts.Home).Msg("reference cache unavailable")
		} else {
			s.cache = db
		}
	}
	return s, nil
}

func openCache(home string) (*cache.DB, error) {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	return cache.Open(filepath.Join(home, "cache.db"))
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// API returns the underlying API client.
func (s *Service) API() *api.Client { return s.api }

// CacheEnabled reports whether the reference cache is open.
func (s *Service) CacheEnabled() bool { return s.cache != nil }

// ---------------------------------------------------------------------------
// Reference data
// ---------------------------------------------------------------------------

// fetchRefs loads one kind of reference data from the API.
func (s *Service) fetchRefs(ctx context.Context, kind cache.Kind) ([]cache.Ref, error) {
	switch kind {
	case cache.KindClient:
		rows, err := s.api.ListClients(ctx)
		return cache.ClientRefs(rows), err
	case cache.KindVendor:
		rows, err := s.api.ListVendors(ctx)
		return cache.VendorRefs(rows), err
	case cache.KindProduct:
		rows, err := s.api.ListProducts(ctx)
		return cache.ProductRefs(rows), err
	case cache.KindBank:
		rows, err := s.api.ListBanks(ctx)
		return cache.BankRefs(rows), err
	case cache.KindEmployee:
		rows, err := s.api.ListEmployees(ctx)
		return cache.EmployeeRefs(rows), err
	case cache.KindCategory:
		rows, err := s.api.ListCategories(ctx)
		return cache.CategoryRefs(rows), err
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// store writes refs into the cache, logging instead of failing.
func (s *Service) store(kind cache.Kind, refs []cache.Ref) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Replace(kind, refs); err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("cache write failed")
	}
}

// refs returns the cached references of kind, fetching them live when the
// cache is off or empty. live reports whether the rows came from the API.
func (s *Service) refs(ctx context.Context, kind cache.Kind) (rows []cache.Ref, live bool, err error) {
	if s.cache != nil {
		cached, err := s.cache.List(kind)
		if err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("cache read failed")
		} else if len(cached) > 0 {
			return cached, false, nil
		}
	}
	rows, err = s.refresh(ctx, kind)
	return rows, true, err
}

// refresh fetches kind live and stores it.
func (s *Service) refresh(ctx context.Context, kind cache.Kind) ([]cache.Ref, error) {
	rows, err := s.fetchRefs(ctx, kind)
	if err != nil {
		return nil, err
	}
	s.store(kind, rows)
	return rows, nil
}

// touched refreshes cached kinds after a write changed them server-side.
// Failures are logged; the write itself already succeeded.
func (s *Service) touched(ctx context.Context, kinds ...cache.Kind) {
	if s.cache == nil {
		return
	}
	for _, kind := range kinds {
		if _, err := s.refresh(ctx, kind); err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("cache refresh failed")
		}
	}
}

// nameIndex resolves ids of one kind to display names. A miss against
// cached rows triggers one live refetch, since the cache may be stale.
type nameIndex struct {
	s     *Service
	kind  cache.Kind
	names map[models.ID]string
	live  bool
}

func (s *Service) names(kind cache.Kind) *nameIndex {
	return &nameIndex{s: s, kind: kind}
}

func (n *nameIndex) lookup(ctx context.Context, id models.ID) (string, bool) {
	if id == "" {
		return "", false
	}
	if n.names == nil {
		rows, live, err := n.s.refs(ctx, n.kind)
		if err != nil {
			n.s.log.Warn().Err(err).Str("kind", string(n.kind)).Msg("name lookup failed")
			n.names, n.live = map[models.ID]string{}, true
			return "", false
		}
		n.names, n.live = cache.Names(rows), live
	}
	if name, ok := n.names[id]; ok {
		return name, true
	}
	if !n.live {
		n.live = true
		if rows, err := n.s.refresh(ctx, n.kind); err == nil {
			n.names = cache.Names(rows)
		}
		name, ok := n.names[id]
		return name, ok
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Cache maintenance
// ---------------------------------------------------------------------------

// Sync refreshes every reference kind concurrently and returns the cache
// statistics afterwards. Nothing is written unless every fetch succeeds.
func (s *Service) Sync(ctx context.Context) ([]cache.KindStats, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}

	fetched := make([][]cache.Ref, len(cache.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range cache.Kinds {
		g.Go(func() error {
			rows, err := s.fetchRefs(gctx, kind)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			fetched[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Sync: %w", err)
	}

	s.mu.Lock()
	for i, kind := range cache.Kinds {
		if err := s.cache.Replace(kind, fetched[i]); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("Sync: %w", err)
		}
	}
	s.mu.Unlock()

	s.log.Info().Int("kinds", len(cache.Kinds)).Msg("reference cache synced")
	return s.cache.Stats()
}

// SearchRefs searches the reference cache.
func (s *Service) SearchRefs(query string, kind cache.Kind, limit int) ([]cache.Ref, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}
	return s.cache.Search(query, kind, limit)
}

// CacheStats returns per-kind counts and sync times.
func (s *Service) CacheStats() ([]cache.KindStats, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}
	return s.cache.Stats()
}

// ClearCache drops every cached reference.
func (s *Service) ClearCache() error {
	if s.cache == nil {
		return ErrCacheDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clear()
}

// CachePath returns the cache file path, or "" when the cache is off.
func (s *Service) CachePath() string {
	if s.cache == nil {
		return ""
	}
	return s.cache.Path()
}
