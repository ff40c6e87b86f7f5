// Copyright © 2025 The cssls authors

package lsp

import (
	"sync"

	"github.com/tliron/commonlog"

	"github.com/luthersystems/cssls/css"
)

// Router maps a document's language ID to the analysis engine for its
// dialect. Unknown language IDs fall back to the css engine so every
// document gets some answer; the fallback is logged once per unknown
// identifier rather than per request.
type Router struct {
	log     commonlog.Logger
	engines map[string]*css.Service
	def     *css.Service

	noticeMu sync.Mutex
	noticed  map[string]bool
}

// NewRouter registers one engine per supported dialect with css as the
// fallback.
func NewRouter(log commonlog.Logger) *Router {
	cssEngine := css.NewService(css.DialectCSS)
	return &Router{
		log: log,
		engines: map[string]*css.Service{
			"css":  cssEngine,
			"scss": css.NewService(css.DialectSCSS),
			"less": css.NewService(css.DialectLESS),
		},
		def:     cssEngine,
		noticed: make(map[string]bool),
	}
}

// Engine returns the engine registered for the language ID, or the
// default css engine when none is. Never nil.
func (r *Router) Engine(languageID string) *css.Service {
	if e, ok := r.engines[languageID]; ok {
		return e
	}
	r.noticeMu.Lock()
	if !r.noticed[languageID] {
		r.noticed[languageID] = true
		r.log.Noticef("no engine registered for language %q, using css", languageID)
	}
	r.noticeMu.Unlock()
	return r.def
}

// Configure forwards dialect-specific settings to every registered
// engine. A nil section restores that engine's defaults.
func (r *Router) Configure(settings *ServerSettings) {
	if settings == nil {
		settings = &ServerSettings{}
	}
	r.engines["css"].Configure(settings.CSS)
	r.engines["scss"].Configure(settings.SCSS)
	r.engines["less"].Configure(settings.LESS)
}
