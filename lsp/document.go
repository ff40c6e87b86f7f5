// Copyright © 2025 The cssls authors

// Package lsp implements a Language Server Protocol server for CSS,
// SCSS, and LESS stylesheets. It provides diagnostics, hover,
// completion, document symbols, go-to-definition, references,
// highlights, code actions, and rename support.
package lsp

import (
	"strings"
	"sync"
)

// Document is a snapshot of an open text document. Snapshots are
// immutable; Change installs a fresh one so readers never observe a
// partially updated document.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Content    string
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store.
func (s *DocumentStore) Open(uri, languageID string, version int32, content string) *Document {
	doc := &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Content:    content,
	}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change replaces a document's content (full sync). The language ID
// carries over from the open document.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &Document{URI: uri, Version: version, Content: content}
	if prev, ok := s.docs[uri]; ok {
		doc.LanguageID = prev.LanguageID
	}
	s.docs[uri] = doc
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

// All returns every open document.
func (s *DocumentStore) All() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out
}

// languageID maps a URI's extension to a dialect identifier, used when
// a client opens a document without declaring one.
func languageID(uri string) string {
	switch {
	case strings.HasSuffix(uri, ".scss"):
		return "scss"
	case strings.HasSuffix(uri, ".less"):
		return "less"
	default:
		return "css"
	}
}
