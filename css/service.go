// Copyright © 2025 The cssls authors

package css

import "sync"

// Service is the analysis engine for one dialect. Parsing is a pure
// function; Configure swaps the validation settings used when a query
// does not carry per-document settings of its own.
type Service struct {
	dialect Dialect

	mu       sync.RWMutex
	settings *Settings
}

// NewService creates an engine for the given dialect with default
// settings.
func NewService(dialect Dialect) *Service {
	return &Service{dialect: dialect, settings: DefaultSettings()}
}

// Dialect returns the dialect this service analyzes.
func (s *Service) Dialect() Dialect {
	return s.dialect
}

// Parse builds the semantic model for a document's content.
func (s *Service) Parse(uri, content string) *Stylesheet {
	return Parse(uri, content, s.dialect)
}

// Configure replaces the service's validation settings. A nil settings
// restores the defaults.
func (s *Service) Configure(settings *Settings) {
	if settings == nil {
		settings = DefaultSettings()
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Settings returns the service's current settings.
func (s *Service) Settings() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Validate checks the model. Per-document settings take precedence;
// pass nil to use the service settings.
func (s *Service) Validate(sheet *Stylesheet, settings *Settings) []Diagnostic {
	if settings == nil {
		settings = s.Settings()
	}
	return Validate(sheet, settings)
}
