package lrtable

import (
	"fmt"

	"github.com/dekarrin/ictiobus/grammar"
)

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	// Shift consumes the look-ahead token and transitions to Next.
	Shift ActionKind = iota

	// Reduce collapses the top len(Prod.RHS) stack entries into one labeled
	// Prod.LHS.
	Reduce

	// Accept ends the parse successfully.
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is a single table action: a tagged variant of Shift{Next},
// Reduce{Prod}, or Accept.
type Action struct {
	Kind ActionKind
	Next *State
	Prod grammar.Production
}

// NewShift builds a Shift action to the given state.
func NewShift(next *State) Action {
	return Action{Kind: Shift, Next: next}
}

// NewReduce builds a Reduce action for the given production.
func NewReduce(prod grammar.Production) Action {
	return Action{Kind: Reduce, Prod: prod}
}

// NewAccept builds the Accept action.
func NewAccept() Action {
	return Action{Kind: Accept}
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift(%s)", a.Next.ID())
	case Reduce:
		return fmt.Sprintf("reduce(%s)", a.Prod.String())
	case Accept:
		return "accept"
	default:
		return "invalid-action"
	}
}

// Conflict records an unresolved or dynamically-resolved ambiguity between
// two or more actions in one cell. Dynamic is true when a user-supplied
// filter (see parse package C5) can resolve it at runtime; such conflicts do
// not abort table construction.
type Conflict struct {
	State   *State
	Symbol  grammar.Symbol
	Actions []Action
	Dynamic bool
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict(state=%s, on=%q, dynamic=%v, actions=%v)",
		c.State.ID(), c.Symbol, c.Dynamic, c.Actions)
}
