// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentPrepareRename reports whether the symbol under the cursor
// is renameable. Only variables and custom properties are; per the LSP
// spec a non-renameable position returns null, not an error.
func (s *Server) textDocumentPrepareRename(_ *glsp.Context, params *protocol.PrepareRenameParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[any](context.Background(), s.tracer, s.log, "textDocument/prepareRename", nil, func() (any, error) {
		model := s.models.Get(doc)
		_, at, _ := model.VariableAt(offsetAt(doc.Content, params.Position))
		if at.Len() == 0 {
			return nil, nil
		}
		return &protocol.RangeWithPlaceholder{
			Range:       spanToRange(doc.Content, at),
			Placeholder: doc.Content[at.Start:at.End],
		}, nil
	})
}

// textDocumentRename handles the textDocument/rename request.
func (s *Server) textDocumentRename(_ *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return runSafe[*protocol.WorkspaceEdit](context.Background(), s.tracer, s.log, "textDocument/rename", nil, func() (*protocol.WorkspaceEdit, error) {
		engine := s.router.Engine(doc.LanguageID)
		model := s.models.Get(doc)
		edits, err := engine.Rename(model, offsetAt(doc.Content, params.Position), params.NewName)
		if err != nil {
			return nil, err
		}
		changes := make(map[protocol.DocumentUri][]protocol.TextEdit)
		for _, e := range edits {
			changes[params.TextDocument.URI] = append(changes[params.TextDocument.URI], protocol.TextEdit{
				Range:   spanToRange(doc.Content, e.Span),
				NewText: e.NewText,
			})
		}
		return &protocol.WorkspaceEdit{Changes: changes}, nil
	})
}
