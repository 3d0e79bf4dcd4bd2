// imports.go — import declarations
package ast

// ImportSymbol is one selected symbol of a selective import, with an
// optional local alias.
type ImportSymbol struct {
	Meta
	Name  string
	Alias string // "" when not aliased
}

// ImportStatement brings a package, or selected symbols of it, into scope.
//
//	import core.unstable.blake2s;               Path, no Alias, no Symbols
//	import core.unstable.blake2s as b2;         Path + Alias
//	import core.unstable.(Blake2s, Hash as H);  Path + Symbols
//
// Path segments are stored in source order. Resolution of the package and
// symbols happens downstream.
type ImportStatement struct {
	Meta
	Path    []string
	Alias   string // "" when not aliased
	Symbols []*ImportSymbol
}
