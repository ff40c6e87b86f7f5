// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// textDocumentReferences handles the textDocument/references request.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[[]protocol.Location](context.Background(), s.tracer, s.log, "textDocument/references", nil, func() ([]protocol.Location, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		spans := engine.References(model, offsetAt(doc.Content, params.Position), params.Context.IncludeDeclaration)
		if len(spans) == 0 {
			return nil, nil
		}
		locs := make([]protocol.Location, 0, len(spans))
		for _, span := range spans {
			locs = append(locs, protocol.Location{
				URI:   params.TextDocument.URI,
				Range: spanToRange(doc.Content, span),
			})
		}
		return locs, nil
	})
}

// textDocumentDocumentHighlight handles the textDocument/documentHighlight
// request, marking the definition site as a write and references as
// reads.
func (s *Server) textDocumentDocumentHighlight(_ *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[[]protocol.DocumentHighlight](context.Background(), s.tracer, s.log, "textDocument/documentHighlight", nil, func() ([]protocol.DocumentHighlight, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		hls := engine.Highlights(model, offsetAt(doc.Content, params.Position))
		if len(hls) == 0 {
			return nil, nil
		}
		out := make([]protocol.DocumentHighlight, 0, len(hls))
		for _, hl := range hls {
			kind := protocol.DocumentHighlightKindRead
			if hl.Kind == css.HighlightWrite {
				kind = protocol.DocumentHighlightKindWrite
			}
			out = append(out, protocol.DocumentHighlight{
				Range: spanToRange(doc.Content, hl.Span),
				Kind:  &kind,
			})
		}
		return out, nil
	})
}
