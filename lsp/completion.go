// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// textDocumentCompletion handles the textDocument/completion request.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[any](context.Background(), s.tracer, s.log, "textDocument/completion", nil, func() (any, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		proposals := engine.Completions(model, offsetAt(doc.Content, params.Position))
		if len(proposals) == 0 {
			return nil, nil
		}
		items := make([]protocol.CompletionItem, 0, len(proposals))
		for _, p := range proposals {
			items = append(items, convertCompletionItem(p))
		}
		return items, nil
	})
}

func convertCompletionItem(p css.CompletionItem) protocol.CompletionItem {
	kind := mapCompletionItemKind(p.Kind)
	item := protocol.CompletionItem{
		Label: p.Label,
		Kind:  &kind,
	}
	if p.Detail != "" {
		item.Detail = strPtr(p.Detail)
	}
	if p.Doc != "" {
		item.Documentation = &protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: p.Doc,
		}
	}
	if p.InsertText != "" {
		item.InsertText = strPtr(p.InsertText)
	}
	return item
}

func mapCompletionItemKind(kind css.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case css.CompleteProperty:
		return protocol.CompletionItemKindProperty
	case css.CompleteValue:
		return protocol.CompletionItemKindValue
	case css.CompleteVariable:
		return protocol.CompletionItemKindVariable
	case css.CompleteAtKeyword:
		return protocol.CompletionItemKindKeyword
	default:
		return protocol.CompletionItemKindText
	}
}
