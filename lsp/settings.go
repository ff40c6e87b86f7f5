// Copyright © 2025 The cssls authors

package lsp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/luthersystems/cssls/css"
)

// ServerSettings is the shape clients send in
// workspace/didChangeConfiguration: one section per dialect.
type ServerSettings struct {
	CSS  *css.Settings `json:"css"`
	SCSS *css.Settings `json:"scss"`
	LESS *css.Settings `json:"less"`
}

// decodeSettings converts the untyped settings payload from the client
// into ServerSettings.
func decodeSettings(raw any) (*ServerSettings, error) {
	if raw == nil {
		return &ServerSettings{}, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	var settings ServerSettings
	if err := json.Unmarshal(buf, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

// SettingsResolver resolves validation settings for one document. A
// nil result means the dialect engine's own settings apply. Resolution
// may be slow (a client round trip in a full implementation), so the
// cache tolerates results arriving after the document has closed.
type SettingsResolver func(doc *Document) *css.Settings

// settingsCache memoizes per-document settings resolution. Entries are
// dropped on document close and the whole cache is cleared when the
// client pushes new configuration.
type settingsCache struct {
	resolve SettingsResolver
	isOpen  func(uri string) bool

	mu    sync.Mutex
	byURI map[string]*css.Settings
	known map[string]bool
}

func newSettingsCache(resolve SettingsResolver, isOpen func(uri string) bool) *settingsCache {
	if resolve == nil {
		resolve = func(*Document) *css.Settings { return nil }
	}
	return &settingsCache{
		resolve: resolve,
		isOpen:  isOpen,
		byURI:   make(map[string]*css.Settings),
		known:   make(map[string]bool),
	}
}

// For returns the settings for a document, resolving and caching them
// on first use. A resolution completing after the document closed is
// discarded instead of cached.
func (c *settingsCache) For(doc *Document) *css.Settings {
	c.mu.Lock()
	if c.known[doc.URI] {
		s := c.byURI[doc.URI]
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	s := c.resolve(doc)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen(doc.URI) {
		return s
	}
	c.byURI[doc.URI] = s
	c.known[doc.URI] = true
	return s
}

// Remove drops the cached settings for a closed document.
func (c *settingsCache) Remove(uri string) {
	c.mu.Lock()
	delete(c.byURI, uri)
	delete(c.known, uri)
	c.mu.Unlock()
}

// Clear drops all cached settings so the next query re-resolves.
func (c *settingsCache) Clear() {
	c.mu.Lock()
	c.byURI = make(map[string]*css.Settings)
	c.known = make(map[string]bool)
	c.mu.Unlock()
}
