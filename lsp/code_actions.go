// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// textDocumentCodeAction handles the textDocument/codeAction request.
// It re-derives the diagnostics for the document and returns quick
// fixes for the ones overlapping the requested range.
func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	// If the client only wants specific kinds, check we support them.
	if len(params.Context.Only) > 0 {
		if !slicesContains(params.Context.Only, protocol.CodeActionKindQuickFix) {
			return nil, nil
		}
	}

	return runSafe[any](context.Background(), s.tracer, s.log, "textDocument/codeAction", nil, func() (any, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		diags := engine.Validate(model, s.settings.For(doc))
		fixes := engine.CodeActions(model, diags)

		start := offsetAt(doc.Content, params.Range.Start)
		end := offsetAt(doc.Content, params.Range.End)

		var actions []protocol.CodeAction
		for _, fix := range fixes {
			if fix.Fixes != nil && !spansOverlap(fix.Fixes.Span, start, end) {
				continue
			}
			actions = append(actions, convertCodeAction(params.TextDocument.URI, doc.Content, fix))
		}
		if len(actions) == 0 {
			return nil, nil
		}
		return actions, nil
	})
}

func convertCodeAction(uri protocol.DocumentUri, content string, fix css.CodeAction) protocol.CodeAction {
	kind := protocol.CodeActionKindQuickFix
	action := protocol.CodeAction{
		Title: fix.Title,
		Kind:  &kind,
	}
	if fix.Fixes != nil {
		action.Diagnostics = []protocol.Diagnostic{convertDiagnostic(content, *fix.Fixes)}
	}
	if len(fix.Edits) > 0 {
		edits := make([]protocol.TextEdit, 0, len(fix.Edits))
		for _, e := range fix.Edits {
			edits = append(edits, protocol.TextEdit{
				Range:   spanToRange(content, e.Span),
				NewText: e.NewText,
			})
		}
		action.Edit = &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits},
		}
	}
	return action
}

// spansOverlap reports whether a span intersects the half-open offset
// range [start, end). A zero-width request range matches spans
// containing the position.
func spansOverlap(span css.Span, start, end int) bool {
	if start == end {
		return span.Contains(start) || span.End == start
	}
	return span.Start < end && start < span.End
}

func slicesContains(kinds []protocol.CodeActionKind, want protocol.CodeActionKind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
