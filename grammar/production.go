package grammar

import "strings"

// AssignOp is the operator of a named Assignment: "=" binds the RHS
// position's value, "?=" binds whether that position's value is truthy.
type AssignOp string

const (
	// AssignValue binds the RHS child's value directly.
	AssignValue AssignOp = "="

	// AssignPresence binds the boolean truthiness of the RHS child's value.
	AssignPresence AssignOp = "?="
)

// Assignment names an RHS position of a production so that a semantic action
// receives it as a keyword argument in addition to the positional children.
type Assignment struct {
	Name   string
	RHSIdx int
	Op     AssignOp
}

// Production is a single grammar rule `LHS -> RHS`. ActionName, Dynamic, and
// Assignments are consulted by the semantic dispatch component (parse
// package C7); ID is the production's position in the grammar's definition
// order ("prod_symbol_id" in spec terms) and is what a reduce action reports
// back to the driver.
type Production struct {
	ID          int
	LHS         Symbol
	RHS         []Symbol
	ActionName  string
	Dynamic     bool
	Assignments []Assignment
}

// Empty reports whether this is an epsilon production (RHS has no symbols).
func (p Production) Empty() bool {
	return len(p.RHS) == 0
}

// Equal reports whether two productions have the same shape. IDs are not
// compared; two productions from different grammars with the same LHS/RHS
// compare equal.
func (p Production) Equal(o Production) bool {
	if p.LHS != o.LHS || len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != o.RHS[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p.RHS) == 0 {
		return p.LHS + " -> " + "ε"
	}
	return p.LHS + " -> " + strings.Join(p.RHS, " ")
}
