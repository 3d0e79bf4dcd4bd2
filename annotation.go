// annotation.go — function annotations
package ast

// Annotation is `@name(arg0, arg1, ...)` attached to a function. Arguments
// are literal tokens kept as written; this layer attaches no meaning to
// them (the test framework and later stages interpret known names such as
// `@test`).
type Annotation struct {
	Meta
	Name      string
	Arguments []string
}
