package parse

// TerminalAction computes the semantic value of a shifted token. value is
// the matched lexeme (Token.Value).
type TerminalAction func(ctx *Context, value string) interface{}

// ProductionAction computes the semantic value of a reduction. children
// holds one subresult per RHS position, in RHS order; assignments holds one
// entry per named Assignment the production declares (populated from
// children per the assignment's op, see grammar.Assignment).
type ProductionAction func(ctx *Context, children []interface{}, assignments map[string]interface{}) interface{}

// Actions is the explicit action namespace a Parser dispatches shift/reduce
// semantic actions through, keyed by the action name a Terminal or
// Production declares (grammar.Terminal.ActionName /
// grammar.Production.ActionName). This replaces the source engine's
// dynamically-resolved-by-string-name dispatch (`getattr(self.sem_actions,
// name)`) with a plain map populated by the caller at construction time; see
// the actions.go entry in DESIGN.md.
type Actions struct {
	Terminal   map[string]TerminalAction
	Production map[string]ProductionAction
}

// NewActions returns an empty Actions namespace ready for population.
func NewActions() *Actions {
	return &Actions{
		Terminal:   map[string]TerminalAction{},
		Production: map[string]ProductionAction{},
	}
}

func (a *Actions) resolveTerminal(name string) (TerminalAction, bool) {
	if a == nil {
		return nil, false
	}
	fn, ok := a.Terminal[name]
	return fn, ok
}

func (a *Actions) resolveProduction(name string) (ProductionAction, bool) {
	if a == nil {
		return nil, false
	}
	fn, ok := a.Production[name]
	return fn, ok
}
