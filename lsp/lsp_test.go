// Copyright © 2025 The cssls authors

package lsp

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// testServer creates a server on a fake clock with the process exit
// stubbed out.
func testServer(t *testing.T, opts ...Option) (*Server, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	opts = append([]Option{
		WithClock(clock),
		WithLogger(&recordingLogger{}),
	}, opts...)
	srv := New(opts...)
	srv.exitFn = func(int) {}
	t.Cleanup(func() {
		srv.scheduler.Dispose()
		srv.models.Dispose()
	})
	return srv, clock
}

// mockContext returns a minimal glsp.Context for testing.
func mockContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
	}
}

// publishCapture collects published diagnostics thread-safely; the
// debounce callback publishes from a timer goroutine.
type publishCapture struct {
	mu        sync.Mutex
	published []*protocol.PublishDiagnosticsParams
}

func (p *publishCapture) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				p.mu.Lock()
				p.published = append(p.published, params.(*protocol.PublishDiagnosticsParams))
				p.mu.Unlock()
			}
		},
	}
}

func (p *publishCapture) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func (p *publishCapture) last() *protocol.PublishDiagnosticsParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.published) == 0 {
		return nil
	}
	return p.published[len(p.published)-1]
}

func openDoc(t *testing.T, s *Server, ctx *glsp.Context, uri, langID, content string) {
	t.Helper()
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: langID,
			Version:    1,
			Text:       content,
		},
	})
	require.NoError(t, err)
}

func changeDoc(t *testing.T, s *Server, ctx *glsp.Context, uri string, version int32, content string) {
	t.Helper()
	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                protocol.Integer(version),
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: content},
		},
	})
	require.NoError(t, err)
}

func closeDoc(t *testing.T, s *Server, ctx *glsp.Context, uri string) {
	t.Helper()
	err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
}

func position(line, char int) protocol.Position {
	return protocol.Position{Line: safeUint(line), Character: safeUint(char)}
}

// --- Position conversion tests ---

func TestOffsetAt(t *testing.T) {
	content := ".x {\n  color: red;\n}\n"
	assert.Equal(t, 0, offsetAt(content, position(0, 0)))
	assert.Equal(t, 7, offsetAt(content, position(1, 2)))
	assert.Equal(t, 19, offsetAt(content, position(2, 0)))

	t.Run("clamps past line end", func(t *testing.T) {
		assert.Equal(t, 4, offsetAt(content, position(0, 99)))
	})
	t.Run("clamps past last line", func(t *testing.T) {
		assert.Equal(t, len(content), offsetAt(content, position(99, 0)))
	})
}

func TestPositionAt(t *testing.T) {
	content := ".x {\n  color: red;\n}\n"
	assert.Equal(t, position(0, 0), positionAt(content, 0))
	assert.Equal(t, position(1, 2), positionAt(content, 7))
	assert.Equal(t, position(2, 0), positionAt(content, 19))

	t.Run("clamps out of range", func(t *testing.T) {
		assert.Equal(t, position(3, 0), positionAt(content, 999))
		assert.Equal(t, position(0, 0), positionAt(content, -1))
	})
}

// --- Lifecycle tests ---

func TestDidOpenPublishesAfterDebounce(t *testing.T) {
	srv, clock := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()

	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { colr: red }")
	assert.Equal(t, 0, capture.count(), "diagnostics wait out the debounce window")

	clock.Advance(defaultValidationDelay)
	require.Eventually(t, func() bool { return capture.count() == 1 },
		time.Second, time.Millisecond)

	pub := capture.last()
	assert.Equal(t, "file:///a.css", pub.URI)
	require.Len(t, pub.Diagnostics, 1)
	assert.Contains(t, pub.Diagnostics[0].Message, "colr")
}

func TestDidChangeCoalesces(t *testing.T) {
	srv, clock := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()

	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { color: red }")
	for i := int32(2); i <= 5; i++ {
		changeDoc(t, srv, ctx, "file:///a.css", i, ".x { colr: red }")
		clock.Advance(defaultValidationDelay / 4)
	}
	clock.Advance(defaultValidationDelay)
	require.Eventually(t, func() bool { return capture.count() == 1 },
		time.Second, time.Millisecond)

	require.Len(t, capture.last().Diagnostics, 1, "diagnostics reflect the final content")
}

func TestDidSaveValidatesImmediately(t *testing.T) {
	srv, _ := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()

	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { }")
	err := srv.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.css"},
	})
	require.NoError(t, err)

	require.Equal(t, 1, capture.count(), "save publishes without waiting for the debounce")
	require.Len(t, capture.last().Diagnostics, 1)
	assert.Contains(t, capture.last().Diagnostics[0].Message, "empty")
}

func TestDidCloseCancelsAndClears(t *testing.T) {
	srv, clock := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()

	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { colr: red }")
	closeDoc(t, srv, ctx, "file:///a.css")

	require.Equal(t, 1, capture.count())
	assert.Empty(t, capture.last().Diagnostics, "close clears published diagnostics")
	assert.Nil(t, srv.docs.Get("file:///a.css"))
	assert.Equal(t, 0, srv.models.Len())

	// The pending validation was cancelled; nothing else fires.
	clock.Advance(2 * defaultValidationDelay)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, capture.count())
}

func TestDidChangeConfiguration(t *testing.T) {
	srv, clock := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()

	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { colr: red }")
	clock.Advance(defaultValidationDelay)
	require.Eventually(t, func() bool { return capture.count() == 1 },
		time.Second, time.Millisecond)
	require.Len(t, capture.last().Diagnostics, 1)

	err := srv.workspaceDidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"css": map[string]any{"validate": false}},
	})
	require.NoError(t, err)

	// Configuration change re-validates every open document.
	clock.Advance(defaultValidationDelay)
	require.Eventually(t, func() bool { return capture.count() == 2 },
		time.Second, time.Millisecond)
	assert.Empty(t, capture.last().Diagnostics)
}

// --- Query handler tests ---

func TestHoverHandler(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { color: red }")

	hov, err := srv.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.css"},
			Position:     position(0, 6),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hov)
	content, ok := hov.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "**color**")

	t.Run("unknown document", func(t *testing.T) {
		hov, err := srv.textDocumentHover(ctx, &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope.css"},
				Position:     position(0, 0),
			},
		})
		require.NoError(t, err)
		assert.Nil(t, hov)
	})
}

func TestCompletionHandler(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.scss", "scss", "$accent: red;\n.x { color: $accent; }")

	result, err := srv.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(1, 19),
		},
	})
	require.NoError(t, err)
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok, "completion result should be []CompletionItem, got %T", result)
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	assert.Contains(t, labels, "$accent")
}

func TestDocumentSymbolHandler(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.scss", "scss", "$accent: red;\n.x { color: $accent; }")

	result, err := srv.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
	})
	require.NoError(t, err)
	syms, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, syms, 2)
	assert.Equal(t, "$accent", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindVariable, syms[0].Kind)
	assert.Equal(t, ".x", syms[1].Name)
	assert.Equal(t, protocol.SymbolKindClass, syms[1].Kind)
}

func TestDefinitionAndReferencesHandlers(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	content := "$accent: red;\n.x { color: $accent; }"
	openDoc(t, srv, ctx, "file:///a.scss", "scss", content)

	result, err := srv.textDocumentDefinition(ctx, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(1, 13),
		},
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok)
	assert.Equal(t, position(0, 0), loc.Range.Start)
	assert.Equal(t, position(0, 7), loc.Range.End)

	refs, err := srv.textDocumentReferences(ctx, &protocol.ReferenceParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(0, 1),
		},
		Context: protocol.ReferenceContext{IncludeDeclaration: true},
	})
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	hls, err := srv.textDocumentDocumentHighlight(ctx, &protocol.DocumentHighlightParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(0, 1),
		},
	})
	require.NoError(t, err)
	require.Len(t, hls, 2)
	require.NotNil(t, hls[0].Kind)
	assert.Equal(t, protocol.DocumentHighlightKindWrite, *hls[0].Kind)
}

func TestRenameHandlers(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.scss", "scss", "$accent: red;\n.x { color: $accent; }")

	prep, err := srv.textDocumentPrepareRename(ctx, &protocol.PrepareRenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(0, 1),
		},
	})
	require.NoError(t, err)
	rp, ok := prep.(*protocol.RangeWithPlaceholder)
	require.True(t, ok)
	assert.Equal(t, "$accent", rp.Placeholder)

	edit, err := srv.textDocumentRename(ctx, &protocol.RenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
			Position:     position(0, 1),
		},
		NewName: "primary",
	})
	require.NoError(t, err)
	require.NotNil(t, edit)
	edits := edit.Changes["file:///a.scss"]
	require.Len(t, edits, 2)
	assert.Equal(t, "$primary", edits[0].NewText)

	t.Run("not renameable degrades to null", func(t *testing.T) {
		edit, err := srv.textDocumentRename(ctx, &protocol.RenameParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.scss"},
				Position:     position(1, 1),
			},
			NewName: "y",
		})
		require.NoError(t, err)
		assert.Nil(t, edit)
	})
}

func TestCodeActionHandler(t *testing.T) {
	srv, _ := testServer(t)
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.css", "css", ".x { colr: red }")

	result, err := srv.textDocumentCodeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.css"},
		Range: protocol.Range{
			Start: position(0, 0),
			End:   position(0, 16),
		},
	})
	require.NoError(t, err)
	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok)
	require.NotEmpty(t, actions)
	assert.Equal(t, "Rename to 'color'", actions[0].Title)
	require.NotNil(t, actions[0].Edit)
}

func TestUnknownDialectFallback(t *testing.T) {
	log := &recordingLogger{}
	srv, _ := testServer(t, WithLogger(log))
	ctx := mockContext()
	openDoc(t, srv, ctx, "file:///a.styl", "stylus", ".x { color: red }")

	hov, err := srv.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.styl"},
			Position:     position(0, 6),
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, hov, "unknown dialects still get answers from the css engine")
	assert.Equal(t, 1, log.noticeCount())
}

// End-to-end lifecycle against the in-process server: open, query,
// edit, close.
func TestLifecycle(t *testing.T) {
	srv, clock := testServer(t)
	capture := &publishCapture{}
	ctx := capture.context()
	uri := "file:///a.css"

	// Open v1 and hover: the model is computed once and reused.
	openDoc(t, srv, ctx, uri, "css", ".x{color:red}")
	hov, err := srv.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     position(0, 5),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hov)

	doc := srv.docs.Get(uri)
	require.NotNil(t, doc)
	assert.Same(t, srv.models.Get(doc), srv.models.Get(doc))

	// Change to v2: one publish reflecting the new content.
	changeDoc(t, srv, ctx, uri, 2, ".x{colr:red}")
	clock.Advance(defaultValidationDelay)
	require.Eventually(t, func() bool { return capture.count() == 1 },
		time.Second, time.Millisecond)
	require.Len(t, capture.last().Diagnostics, 1)
	assert.Contains(t, capture.last().Diagnostics[0].Message, "colr")

	// Close: the cache entry is gone and diagnostics are cleared.
	closeDoc(t, srv, ctx, uri)
	assert.Equal(t, 0, srv.models.Len())
	require.Equal(t, 2, capture.count())
	assert.Empty(t, capture.last().Diagnostics)
}
