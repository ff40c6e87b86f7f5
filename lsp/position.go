// Copyright © 2025 The cssls authors

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/cssls/css"
)

// offsetAt converts a 0-based LSP position to a byte offset in content.
// Out-of-range positions clamp to the nearest valid offset.
func offsetAt(content string, pos protocol.Position) int {
	off := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		nl := strings.IndexByte(content[off:], '\n')
		if nl < 0 {
			return len(content)
		}
		off += nl + 1
	}
	rest := content[off:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return off + min(int(pos.Character), len(rest))
}

// positionAt converts a byte offset to a 0-based LSP position.
func positionAt(content string, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	if offset < 0 {
		offset = 0
	}
	before := content[:offset]
	line := strings.Count(before, "\n")
	col := offset
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		col = offset - nl - 1
	}
	return protocol.Position{Line: safeUint(line), Character: safeUint(col)}
}

// spanToRange converts a byte-offset span to an LSP range.
func spanToRange(content string, span css.Span) protocol.Range {
	return protocol.Range{
		Start: positionAt(content, span.Start),
		End:   positionAt(content, span.End),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
