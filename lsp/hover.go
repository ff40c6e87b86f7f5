// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentHover handles the textDocument/hover request.
// glsp carries no per-request context, so queries run uncancelled.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe(context.Background(), s.tracer, s.log, "textDocument/hover", nil, func() (*protocol.Hover, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		hov := engine.Hover(model, offsetAt(doc.Content, params.Position))
		if hov == nil {
			return nil, nil
		}
		rng := spanToRange(doc.Content, hov.Span)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: hov.Contents,
			},
			Range: &rng,
		}, nil
	})
}
