// Copyright © 2025 The cssls authors

package lsp

import (
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

const serverName = "cssls"

const (
	defaultCacheCapacity   = 10
	defaultCacheMaxAge     = 60 * time.Second
	defaultValidationDelay = 200 * time.Millisecond
)

// Server is the cssls language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	log     commonlog.Logger
	tracer  trace.Tracer

	docs      *DocumentStore
	router    *Router
	models    *ModelCache[*css.Stylesheet]
	scheduler *ValidationScheduler
	settings  *settingsCache

	clock           clockwork.Clock
	cacheCapacity   int
	cacheMaxAge     time.Duration
	validationDelay time.Duration
	resolver        SettingsResolver

	// Context for sending notifications (captured from latest request).
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	// exitFn is called on the LSP exit notification. Defaults to os.Exit.
	// Overridable for testing.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithClock injects the clock used for the cache sweep and the
// validation debounce. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithCacheCapacity bounds the number of cached document models.
func WithCacheCapacity(n int) Option {
	return func(s *Server) { s.cacheCapacity = n }
}

// WithCacheMaxAge sets the idle age after which a cached model is
// dropped by the background sweep.
func WithCacheMaxAge(d time.Duration) Option {
	return func(s *Server) { s.cacheMaxAge = d }
}

// WithValidationDelay sets the debounce window for didChange
// validation.
func WithValidationDelay(d time.Duration) Option {
	return func(s *Server) { s.validationDelay = d }
}

// WithSettingsResolver injects a per-document settings resolver. The
// default resolver defers to each dialect engine's own settings.
func WithSettingsResolver(r SettingsResolver) Option {
	return func(s *Server) { s.resolver = r }
}

// WithTracer injects the tracer recording validation and request
// spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithLogger injects the operational logger.
func WithLogger(log commonlog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a new cssls server.
func New(opts ...Option) *Server {
	s := &Server{
		log:             commonlog.GetLogger(serverName),
		tracer:          otel.Tracer(serverName),
		docs:            NewDocumentStore(),
		clock:           clockwork.NewRealClock(),
		cacheCapacity:   defaultCacheCapacity,
		cacheMaxAge:     defaultCacheMaxAge,
		validationDelay: defaultValidationDelay,
		exitFn:          os.Exit,
	}
	for _, o := range opts {
		o(s)
	}

	s.router = NewRouter(s.log)
	s.models = NewModelCache(s.parseDocument, s.cacheCapacity, s.cacheMaxAge, s.clock)
	s.scheduler = NewValidationScheduler(s.validate, s.validationDelay, s.clock)
	s.settings = newSettingsCache(s.resolver, func(uri string) bool {
		return s.docs.Get(uri) != nil
	})

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:             s.textDocumentHover,
		TextDocumentCompletion:        s.textDocumentCompletion,
		TextDocumentDocumentSymbol:    s.textDocumentDocumentSymbol,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentDocumentHighlight: s.textDocumentDocumentHighlight,
		TextDocumentReferences:        s.textDocumentReferences,
		TextDocumentCodeAction:        s.textDocumentCodeAction,
		TextDocumentRename:            s.textDocumentRename,
		TextDocumentPrepareRename:     s.textDocumentPrepareRename,

		WorkspaceDidChangeConfiguration: s.workspaceDidChangeConfiguration,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// parseDocument is the model cache's compute function.
func (s *Server) parseDocument(doc *Document) *css.Stylesheet {
	return s.router.Engine(doc.LanguageID).Parse(doc.URI, doc.Content)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	capabilities := s.handler.CreateServerCapabilities()

	// Override text document sync to full.
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{":", "$", "@", "-"},
	}

	// Enable prepare rename.
	capabilities.RenameProvider = &protocol.RenameOptions{
		PrepareProvider: boolPtr(true),
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// shutdown handles the LSP shutdown request, tearing down the
// scheduler and the model cache deterministically.
func (s *Server) shutdown(_ *glsp.Context) error {
	s.scheduler.Dispose()
	s.models.Dispose()
	return nil
}

// exit handles the LSP exit notification by terminating the process.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

// workspaceDidChangeConfiguration applies new dialect settings to every
// engine, invalidates the per-document settings cache, and re-triggers
// validation for all open documents. Cached models stay valid; only
// their diagnostics change.
func (s *Server) workspaceDidChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	s.captureNotify(ctx)
	settings, err := decodeSettings(params.Settings)
	if err != nil {
		s.log.Errorf("workspace/didChangeConfiguration: %s", err)
		return nil
	}
	s.router.Configure(settings)
	s.settings.Clear()
	for _, doc := range s.docs.All() {
		s.scheduler.Trigger(doc.URI)
	}
	return nil
}

// captureNotify stores the notification function from the context for
// async use (e.g., publishing diagnostics after a debounce).
func (s *Server) captureNotify(ctx *glsp.Context) {
	if ctx == nil {
		return
	}
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

// sendNotification sends a notification to the client.
func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}
