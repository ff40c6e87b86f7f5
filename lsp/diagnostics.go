// Copyright © 2025 The cssls authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"
	"go.opentelemetry.io/otel/attribute"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	langID := params.TextDocument.LanguageID
	if langID == "" {
		langID = languageID(params.TextDocument.URI)
	}
	doc := s.docs.Open(
		params.TextDocument.URI,
		langID,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.scheduler.Trigger(doc.URI)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)
	s.scheduler.Trigger(doc.URI)
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification by
// validating immediately instead of waiting out the debounce window.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	s.scheduler.CleanPending(params.TextDocument.URI)
	s.validate(params.TextDocument.URI)
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
// The pending validation is cancelled first so no late callback fires,
// then the published diagnostics are cleared and every per-document
// state keyed by the URI is dropped.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.scheduler.CleanPending(uri)

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.settings.Remove(uri)
	s.docs.Close(uri)
	s.models.OnDocumentRemoved(uri)
	return nil
}

// validate runs one validation pass for a document and publishes the
// diagnostics. A failing pass is logged and publishes nothing, leaving
// the previous diagnostics in place until the next pass.
func (s *Server) validate(uri string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("validate %s: panic: %v", uri, r)
		}
	}()

	doc := s.docs.Get(uri)
	if doc == nil {
		return
	}

	_, span := s.tracer.Start(context.Background(), "validate")
	span.SetAttributes(attribute.String("document.uri", uri))
	defer span.End()

	engine := s.router.Engine(doc.LanguageID)
	model := s.models.Get(doc)
	diags := engine.Validate(model, s.settings.For(doc))

	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, convertDiagnostic(doc.Content, d))
	}
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: out,
	})
}

// convertDiagnostic converts a css.Diagnostic to an LSP Diagnostic.
func convertDiagnostic(content string, d css.Diagnostic) protocol.Diagnostic {
	sev := mapSeverity(d.Severity)
	return protocol.Diagnostic{
		Range:    spanToRange(content, d.Span),
		Severity: &sev,
		Source:   strPtr(serverName),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Message:  d.Message,
	}
}

func mapSeverity(sev css.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case css.SeverityError:
		return protocol.DiagnosticSeverityError
	case css.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case css.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	case css.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}
