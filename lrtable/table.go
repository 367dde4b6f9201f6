// Package lrtable holds the read-only LR action/goto table consumed by the
// parsing engine in package parse: states, ordered action cells, gotos, and
// the precomputed conflict lists a table generator would have surfaced.
//
// Constructing a table from a grammar (LALR/SLR/CLR(1) closure, FIRST/FOLLOW
// computation) is an external collaborator's job per spec.md §1 — "the
// engine receives a finished table". Builder here is the narrow surface a
// collaborator (or a test, or a hand-written grammar) uses to assemble one.
package lrtable

import (
	"fmt"
)

// Table is a finished, immutable LR action/goto table. It is shared,
// read-only input to the engine for the duration of a parse, same as the
// Grammar it was built from.
type Table struct {
	states      []*State
	initial     *State
	srConflicts []Conflict
	rrConflicts []Conflict
}

// NewTable wraps a set of already-linked states into a Table. states[0] is
// the initial state.
func NewTable(states []*State, srConflicts, rrConflicts []Conflict) *Table {
	t := &Table{states: states, srConflicts: srConflicts, rrConflicts: rrConflicts}
	if len(states) > 0 {
		t.initial = states[0]
	}
	return t
}

// Initial returns the starting state of the automaton.
func (t *Table) Initial() *State {
	return t.initial
}

// States returns every state in the table, indexed by IntID.
func (t *Table) States() []*State {
	return t.states
}

// SRConflicts returns the precomputed shift/reduce conflicts.
func (t *Table) SRConflicts() []Conflict {
	return t.srConflicts
}

// RRConflicts returns the precomputed reduce/reduce conflicts.
func (t *Table) RRConflicts() []Conflict {
	return t.rrConflicts
}

func (t *Table) String() string {
	return fmt.Sprintf("Table<%d states>", len(t.states))
}
