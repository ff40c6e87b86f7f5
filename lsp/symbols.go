// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol request.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[any](context.Background(), s.tracer, s.log, "textDocument/documentSymbol", nil, func() (any, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		syms := engine.Symbols(model)
		if len(syms) == 0 {
			return nil, nil
		}
		out := make([]protocol.DocumentSymbol, 0, len(syms))
		for _, sym := range syms {
			r := spanToRange(doc.Content, sym.Span)
			out = append(out, protocol.DocumentSymbol{
				Name:           sym.Name,
				Kind:           mapSymbolKind(sym.Kind),
				Range:          r,
				SelectionRange: r,
			})
		}
		return out, nil
	})
}

func mapSymbolKind(kind css.SymbolKind) protocol.SymbolKind {
	switch kind {
	case css.SymbolRule:
		return protocol.SymbolKindClass
	case css.SymbolAtRule:
		return protocol.SymbolKindModule
	case css.SymbolVariable:
		return protocol.SymbolKindVariable
	default:
		return protocol.SymbolKindObject
	}
}
