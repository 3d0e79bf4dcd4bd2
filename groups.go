// groups.go — group literal value forms
//
// A group literal is written either as a single scalar multiple of the
// generator (`5group`) or as an explicit affine point (`(x, y)group`) whose
// coordinates may each be a number, a sign-high/sign-low recovery hint, or
// left inferred (`_`). These value forms hang off GroupLiteral in
// expressions.go; they are plain values, not nodes — the literal node owns
// the identity and span for the whole token.
package ast

// GroupValue is the closed pair of group literal forms.
type GroupValue interface {
	groupValue()
}

// GroupSingle is the scalar form: Text is the decimal multiple, optionally
// signed, exactly as written.
type GroupSingle struct {
	Text string
}

// GroupTuple is the affine form with explicit x and y coordinates.
type GroupTuple struct {
	X GroupCoordinate
	Y GroupCoordinate
}

func (GroupSingle) groupValue() {}
func (GroupTuple) groupValue()  {}

// GroupCoordinateKind discriminates the coordinate forms.
type GroupCoordinateKind int

const (
	CoordinateNumber   GroupCoordinateKind = iota // explicit decimal value
	CoordinateSignHigh                            // recover the greater root
	CoordinateSignLow                             // recover the lesser root
	CoordinateInferred                            // `_`, recover from the other coordinate
)

func (k GroupCoordinateKind) String() string {
	switch k {
	case CoordinateNumber:
		return "number"
	case CoordinateSignHigh:
		return "sign_high"
	case CoordinateSignLow:
		return "sign_low"
	case CoordinateInferred:
		return "inferred"
	}
	return "unknown"
}

func coordinateKindFromName(name string) (GroupCoordinateKind, bool) {
	switch name {
	case "number":
		return CoordinateNumber, true
	case "sign_high":
		return CoordinateSignHigh, true
	case "sign_low":
		return CoordinateSignLow, true
	case "inferred":
		return CoordinateInferred, true
	}
	return 0, false
}

// GroupCoordinate is one coordinate of a GroupTuple. Text is only meaningful
// for CoordinateNumber.
type GroupCoordinate struct {
	Kind GroupCoordinateKind
	Text string
}
