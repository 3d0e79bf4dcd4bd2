// node.go — node identity and source spans for the AST
//
// WHAT THIS MODULE DOES
// =====================
// Every syntactic construct in a program tree carries exactly one `Meta`
// value: a unique numeric identity plus the source span the construct was
// parsed from. Identity distinguishes a node from every other node minted
// during the process lifetime, independent of structural content; spans are
// 1-based line/column ranges used for diagnostics.
//
// IDENTITY RULES (IMPORTANT)
// ==========================
// IDs come from a process-wide monotonic counter and are never reused.
// A pass that rebuilds a node around transformed children must KEEP the old
// node's Meta (same construct, new children). A pass that synthesizes a
// brand-new construct must mint a fresh Meta via NewMeta, reusing the span
// of whatever source position the construct stands in for. Deserialization
// restores persisted IDs verbatim and advances the counter past the largest
// one seen, so later minting cannot collide with a loaded tree.
//
// Spans are half-open only in spirit: both endpoints are stored as the
// 1-based (line, col) coordinates of the first and one-past-last character,
// matching the coordinate convention of the language's lexer diagnostics.
package ast

import (
	"fmt"
	"sync/atomic"
)

// Span is a source-location range, 1-based lines and columns.
// The zero Span marks a synthesized node with no concrete source text.
type Span struct {
	Line    int `json:"line"`
	Col     int `json:"col"`
	EndLine int `json:"end_line"`
	EndCol  int `json:"end_col"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Line, s.Col, s.EndLine, s.EndCol)
}

// end returns a zero-width span at the end of s, used for constructs
// synthesized "just after" existing source (e.g. an implicit else-block).
func (s Span) end() Span {
	return Span{Line: s.EndLine, Col: s.EndCol, EndLine: s.EndLine, EndCol: s.EndCol}
}

// Meta is the identity-plus-span header embedded by value in every node.
type Meta struct {
	ID   uint64 `json:"id"`
	Span Span   `json:"span"`
}

// NodeID returns the node's unique identity.
func (m Meta) NodeID() uint64 { return m.ID }

// NodeSpan returns the node's source span.
func (m Meta) NodeSpan() Span { return m.Span }

// Node is implemented by every AST node via an embedded Meta.
type Node interface {
	NodeID() uint64
	NodeSpan() Span
}

var idCounter uint64

// NextID mints the next node identity. Safe for concurrent use.
func NextID() uint64 { return atomic.AddUint64(&idCounter, 1) }

// NewMeta mints a Meta with a fresh identity and the given span.
func NewMeta(span Span) Meta { return Meta{ID: NextID(), Span: span} }

// reserveIDs advances the counter so that NextID returns values > max.
// Called after deserialization with the largest restored ID.
func reserveIDs(max uint64) {
	for {
		cur := atomic.LoadUint64(&idCounter)
		if cur >= max || atomic.CompareAndSwapUint64(&idCounter, cur, max) {
			return
		}
	}
}
