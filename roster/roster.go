// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTTL matches the published-sheet refresh interval the election
// runs with: the roster is re-fetched at most once a minute.
const DefaultTTL = 60 * time.Second

const fetchTimeout = 15 * time.Second

// Cache is a pull-through cache over the externally maintained voter
// roster, a CSV feed with at least Token and Nama columns. Lookups are
// served from the last snapshot; a refresh happens at most once per
// TTL. A failed refresh keeps serving the last good snapshot, or an
// empty roster if there never was one: nobody can log in, rather than
// anybody.
type Cache struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu      sync.Mutex
	entries map[string]string
	fetched time.Time
	loaded  bool
}

func NewCache(url string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Lookup resolves a trimmed token to the voter's name. Case-sensitive
// exact match against the current snapshot.
func (c *Cache) Lookup(ctx context.Context, token string) (string, bool) {
	name, ok := c.snapshot(ctx)[token]
	return name, ok
}

// Size reports how many eligible voters the current snapshot holds.
func (c *Cache) Size(ctx context.Context) int {
	return len(c.snapshot(ctx))
}

func (c *Cache) snapshot(ctx context.Context) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && time.Since(c.fetched) < c.ttl {
		return c.entries
	}

	entries, err := c.fetch(ctx)
	// Rate-limit retries to the TTL even on failure; the log line below
	// is the operator's signal that logins are running on stale data.
	c.fetched = time.Now()
	c.loaded = true
	if err != nil {
		slog.Warn("roster refresh failed, serving previous snapshot",
			"url", c.url,
			"cached_entries", len(c.entries),
			"error", err,
		)
		return c.entries
	}

	c.entries = entries
	slog.Info("roster refreshed", "entries", len(entries))
	return c.entries
}

func (c *Cache) fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster: unexpected status %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}

// Parse reads the roster CSV. Header names are matched exactly; Token
// values are trimmed the way voters type them.
func Parse(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}

	tokenCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Token":
			tokenCol = i
		case "Nama":
			nameCol = i
		}
	}
	if tokenCol < 0 || nameCol < 0 {
		return nil, errors.New("roster is missing Token or Nama column")
	}

	entries := make(map[string]string)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		if tokenCol >= len(row) || nameCol >= len(row) {
			continue
		}
		token := strings.TrimSpace(row[tokenCol])
		if token == "" {
			continue
		}
		entries[token] = strings.TrimSpace(row[nameCol])
	}
	return entries, nil
}
