package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pders01/hatut/internal/config"
	"github.com/pders01/hatut/internal/debuglog"
	"github.com/pders01/hatut/internal/state"
	"github.com/pders01/hatut/internal/validation"
)

// cached holds the validators and decoded stories of the last 200
// response for one URL, reused when the server answers 304.
type cached struct {
	etag         string
	lastModified string
	entries      []state.Entry
}

// HTTP fetches {base}/{filter}.json with conditional requests.
type HTTP struct {
	client    *http.Client
	baseURL   string
	userAgent string
	parser    *Parser

	mu    sync.Mutex
	cache map[string]cached
}

func NewHTTP(cfg *config.Config) (*HTTP, error) {
	validator := validation.NewSourceURLValidator()
	if cfg.Source.AllowLocal {
		validator = validation.NewPermissiveSourceURLValidator()
	}
	base, err := validator.ValidateAndNormalize(cfg.Source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	return &HTTP{
		client:    &http.Client{Timeout: cfg.Source.HTTPTimeout},
		baseURL:   base,
		userAgent: cfg.Source.UserAgent,
		parser:    NewParser(),
		cache:     make(map[string]cached),
	}, nil
}

// URL returns the address of the collection for filter.
func (h *HTTP) URL(filter string) string {
	return h.baseURL + "/" + url.PathEscape(strings.ToLower(filter)) + ".json"
}

func (h *HTTP) Stories(ctx context.Context, filter string) ([]state.Entry, error) {
	target := h.URL(filter)
	log := debuglog.WithFields(map[string]interface{}{"url": target})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml;q=0.9, */*;q=0.5")

	prev, hasPrev := h.lookup(target)
	if hasPrev {
		if prev.etag != "" {
			req.Header.Set("If-None-Match", prev.etag)
		}
		if prev.lastModified != "" {
			req.Header.Set("If-Modified-Since", prev.lastModified)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && hasPrev {
		log.Debugf("not modified, reusing %d stories", len(prev.entries))
		return append([]state.Entry(nil), prev.entries...), nil
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	entries, err := h.parser.Parse(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", target, err)
	}

	etag := resp.Header.Get("ETag")
	lastMod := resp.Header.Get("Last-Modified")
	if etag != "" || lastMod != "" {
		h.store(target, cached{etag: etag, lastModified: lastMod, entries: entries})
	}

	log.Debugf("fetched %d stories", len(entries))
	return entries, nil
}

func (h *HTTP) lookup(target string) (cached, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.cache[target]
	return c, ok
}

func (h *HTTP) store(target string, c cached) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache[target] = c
}
