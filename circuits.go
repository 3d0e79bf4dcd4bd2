// circuits.go — circuit (record/struct) definitions
package ast

// CircuitMember is one typed member variable of a circuit.
type CircuitMember struct {
	Meta
	Name *Identifier
	Type Type
}

// Circuit is a named aggregate type definition: ordered member variables
// followed by ordered member functions. Member and function names are
// unique within the circuit by construction (parser invariant).
type Circuit struct {
	Meta
	Name      *Identifier
	Members   []*CircuitMember
	Functions []*Function
}

// Member returns the member variable with the given name, or nil.
func (c *Circuit) Member(name string) *CircuitMember {
	for _, m := range c.Members {
		if m.Name.Name == name {
			return m
		}
	}
	return nil
}

// Function returns the member function with the given name, or nil.
func (c *Circuit) Function(name string) *Function {
	for _, f := range c.Functions {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}
