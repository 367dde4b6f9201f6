package lrtable

import "github.com/dekarrin/ictiobus/grammar"

// Builder assembles a Table state-by-state. It exists so callers that
// already have a finished automaton (or a hand-written one, as in this
// package's and parse's tests) can hand it to the engine without pulling in
// a full LALR/SLR construction pipeline.
type Builder struct {
	states      []*State
	srConflicts []Conflict
	rrConflicts []Conflict
}

// NewBuilder starts a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddState creates and registers a new state with the given incoming-
// transition symbol, returning it for further configuration (AddAction,
// AddGoto, SetTerminalOrder). States are numbered in the order they are
// added, so the first call to AddState produces the initial state.
func (b *Builder) AddState(symbol grammar.Symbol) *State {
	s := NewState(len(b.states), symbol)
	b.states = append(b.states, s)
	return s
}

// AddSRConflict records a shift/reduce conflict observed while assembling
// the table.
func (b *Builder) AddSRConflict(c Conflict) {
	b.srConflicts = append(b.srConflicts, c)
}

// AddRRConflict records a reduce/reduce conflict observed while assembling
// the table.
func (b *Builder) AddRRConflict(c Conflict) {
	b.rrConflicts = append(b.rrConflicts, c)
}

// Build finalizes the Table. It does not itself detect conflicts; callers
// populate them via AddSRConflict/AddRRConflict as cells are filled in, or
// call DetectConflicts first for a simple builder-driven flow.
func (b *Builder) Build() *Table {
	return NewTable(b.states, b.srConflicts, b.rrConflicts)
}

// DetectConflicts scans every action cell in every added state and records a
// Conflict for any cell holding more than one action: a shift/reduce
// conflict when the cell has at least one Shift and at least one Reduce,
// else a reduce/reduce conflict when it has more than one Reduce. Whether a
// reduce's RHS is empty is not considered, and a cell whose only extra
// entries are Shifts or Accepts is not recorded. Call it after all states/actions have been added and
// before Build if the actions were not contributed through a path that
// already tracked conflicts. dynamic marks every detected conflict with the
// same flag, matching how a single dynamic_filter-covered grammar would be
// described to the engine.
func (b *Builder) DetectConflicts(dynamic bool) {
	for _, s := range b.states {
		for sym, acts := range s.actions {
			if len(acts) <= 1 {
				continue
			}
			shifts := 0
			reduces := 0
			for _, a := range acts {
				switch a.Kind {
				case Shift:
					shifts++
				case Reduce:
					reduces++
				}
			}
			if shifts >= 1 && reduces >= 1 {
				b.AddSRConflict(Conflict{State: s, Symbol: sym, Actions: acts, Dynamic: dynamic})
			} else if reduces > 1 {
				b.AddRRConflict(Conflict{State: s, Symbol: sym, Actions: acts, Dynamic: dynamic})
			}
		}
	}
}
