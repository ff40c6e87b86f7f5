// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDefinition handles the textDocument/definition request.
// Definitions resolve within the single document: a variable reference
// jumps to its definition site.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[any](context.Background(), s.tracer, s.log, "textDocument/definition", nil, func() (any, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		span := engine.Definition(model, offsetAt(doc.Content, params.Position))
		if span == nil {
			return nil, nil
		}
		return protocol.Location{
			URI:   params.TextDocument.URI,
			Range: spanToRange(doc.Content, *span),
		}, nil
	})
}
