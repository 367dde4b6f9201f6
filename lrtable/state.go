package lrtable

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/ictiobus/grammar"
)

// State is one node of the LR automaton: an integer id, the grammar symbol
// that labels the transition into it, an action table indexed by terminal,
// and a goto table indexed by non-terminal.
//
// The action cell for a terminal is an ordered list, not a set: when more
// than one action applies, the table generator orders it Shift (if any)
// first, then Reduces with empty (epsilon) reductions before non-empty ones.
// The driver (package parse) relies on that ordering to realize
// shift/empty-reduce preference without special-casing the table.
type State struct {
	id     int
	symbol grammar.Symbol

	// termOrder lists every terminal this state has an action for, ordered
	// by descending terminal priority (ties keep definition order). It is
	// the iteration order the lexer (parse package C3) must use when trying
	// recognizers.
	termOrder []grammar.Symbol

	// finishFlags is parallel to termOrder: finishFlags[i] is true if the
	// terminal at termOrder[i] is a "finish" terminal for this state.
	finishFlags []bool

	actions map[grammar.Symbol][]Action
	gotos   map[grammar.Symbol]*State
}

// NewState creates an empty state with the given id and incoming-transition
// symbol. Use AddAction (or AddOrderedActions), AddGoto, and
// SetTerminalOrder to populate it.
func NewState(id int, symbol grammar.Symbol) *State {
	return &State{
		id:      id,
		symbol:  symbol,
		actions: map[grammar.Symbol][]Action{},
		gotos:   map[grammar.Symbol]*State{},
	}
}

// ID returns the state's textual identifier.
func (s *State) ID() string {
	return strconv.Itoa(s.id)
}

// IntID returns the state's integer identifier.
func (s *State) IntID() int {
	return s.id
}

// Symbol returns the grammar symbol that labels the transition into this
// state (empty for the initial state).
func (s *State) Symbol() grammar.Symbol {
	return s.symbol
}

// AddAction appends act to the ordered cell for terminal sym. Callers are
// responsible for appending in the shift/ε-reduce/non-ε-reduce order the
// driver depends on; AddOrderedActions does this automatically from a raw
// set of candidate actions and is the preferred entry point.
func (s *State) AddAction(sym grammar.Symbol, act Action) {
	s.actions[sym] = append(s.actions[sym], act)
}

// AddOrderedActions replaces the cell for sym with acts, reordered to put
// one Shift first (if present), then Reduces with empty RHS before Reduces
// with non-empty RHS. Relative order among reduces of the same emptiness is
// preserved.
func (s *State) AddOrderedActions(sym grammar.Symbol, acts []Action) {
	var shift *Action
	var emptyReduces []Action
	var nonEmptyReduces []Action
	var accepts []Action
	for i := range acts {
		a := acts[i]
		switch a.Kind {
		case Shift:
			cp := a
			shift = &cp
		case Accept:
			accepts = append(accepts, a)
		case Reduce:
			if a.Prod.Empty() {
				emptyReduces = append(emptyReduces, a)
			} else {
				nonEmptyReduces = append(nonEmptyReduces, a)
			}
		}
	}

	ordered := make([]Action, 0, len(acts))
	if shift != nil {
		ordered = append(ordered, *shift)
	}
	ordered = append(ordered, accepts...)
	ordered = append(ordered, emptyReduces...)
	ordered = append(ordered, nonEmptyReduces...)
	s.actions[sym] = ordered
}

// Actions returns the ordered action cell for the given terminal, and
// whether that terminal has any action registered in this state at all.
func (s *State) Actions(sym grammar.Symbol) ([]Action, bool) {
	acts, ok := s.actions[sym]
	return acts, ok
}

// HasAction reports whether this state has any action for sym (including
// grammar.EMPTY / grammar.STOP).
func (s *State) HasAction(sym grammar.Symbol) bool {
	_, ok := s.actions[sym]
	return ok
}

// ActionSymbols returns every terminal this state has an action cell for,
// including grammar.EMPTY and grammar.STOP where applicable, in no
// particular order. Use Terminals for the priority-ordered lexing sequence.
func (s *State) ActionSymbols() []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, len(s.actions))
	for sym := range s.actions {
		syms = append(syms, sym)
	}
	return syms
}

// SetTerminalOrder records the priority-descending terminal order (and
// parallel finish flags) this state should try candidates in during lexing.
// It is computed once by the table builder and is otherwise immutable.
func (s *State) SetTerminalOrder(order []grammar.Symbol, finish []bool) {
	s.termOrder = order
	s.finishFlags = finish
}

// Terminals returns the terminals this state attempts to recognize, in
// descending-priority order (ties preserve definition order).
func (s *State) Terminals() []grammar.Symbol {
	return s.termOrder
}

// FinishFlags returns the per-terminal finish flags parallel to Terminals.
func (s *State) FinishFlags() []bool {
	return s.finishFlags
}

// AddGoto records the successor state reached from this state on
// non-terminal sym.
func (s *State) AddGoto(sym grammar.Symbol, next *State) {
	s.gotos[sym] = next
}

// Goto returns the successor state for non-terminal sym, if any.
func (s *State) Goto(sym grammar.Symbol) (*State, bool) {
	next, ok := s.gotos[sym]
	return next, ok
}

func (s *State) String() string {
	return fmt.Sprintf("State<%d, sym=%q, %d actions, %d gotos>",
		s.id, s.symbol, len(s.actions), len(s.gotos))
}
