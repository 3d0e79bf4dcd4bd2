// errors.go — typed error values for canonicalization, decoding and file I/O
//
// What this file does
// -------------------
// Every fallible operation of this layer returns one of four error shapes,
// each carrying enough context to report without re-deriving it:
//
//   - *CanonError  — a desugaring rule's precondition was violated; carries
//     the offending node's span and a machine-distinguishable kind.
//   - *EncodeError — a tree could not be serialized; wraps the underlying
//     JSON error.
//   - *DecodeError — a persisted tree could not be parsed back; carries the
//     decoder's position context and wraps the underlying JSON error.
//   - *FileError   — file create/read failure; wraps the OS error with the
//     path and operation for diagnostics.
//
// Errors pass through the Director and the Ast facade unchanged in kind;
// callers can switch on the concrete type or use errors.As. Nothing here
// renders source snippets — that is the surrounding driver's job, which has
// the source text; this layer only preserves the span.
package ast

import "fmt"

// CanonErrorKind distinguishes canonicalization failures.
type CanonErrorKind int

const (
	// ErrInvalidAssignTarget: a compound assignment's target is not a place
	// expression (e.g. a literal or a call result).
	ErrInvalidAssignTarget CanonErrorKind = iota
	// ErrTupleArityMismatch: a destructuring definition declares a different
	// number of names than its initializer's syntactically-known width.
	ErrTupleArityMismatch
	// ErrMalformedLiteral: a group or address literal fails validation.
	ErrMalformedLiteral
	// ErrSelfOutsideCircuit: a Self form appears outside a circuit.
	ErrSelfOutsideCircuit
)

func (k CanonErrorKind) String() string {
	switch k {
	case ErrInvalidAssignTarget:
		return "invalid assignment target"
	case ErrTupleArityMismatch:
		return "tuple arity mismatch"
	case ErrMalformedLiteral:
		return "malformed literal"
	case ErrSelfOutsideCircuit:
		return "Self outside circuit"
	}
	return "unknown"
}

// CanonError reports a violated canonicalization rule at a source span.
type CanonError struct {
	Kind CanonErrorKind
	Span Span
	Msg  string
}

func (e *CanonError) Error() string {
	return fmt.Sprintf("canonicalization error at %s: %s: %s", e.Span, e.Kind, e.Msg)
}

func canonErrorf(kind CanonErrorKind, span Span, format string, args ...any) *CanonError {
	return &CanonError{Kind: kind, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// EncodeError reports a failure to serialize a tree.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("ast: encode: %v", e.Err) }

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a malformed persisted tree. Context names the node
// kind or field being decoded when known.
type DecodeError struct {
	Context string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("ast: decode: %v", e.Err)
	}
	return fmt.Sprintf("ast: decode %s: %v", e.Context, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrorf(context, format string, args ...any) *DecodeError {
	return &DecodeError{Context: context, Err: fmt.Errorf(format, args...)}
}

// FileError wraps a file system failure with the operation and path.
type FileError struct {
	Op   string // "create", "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("ast: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
