package parse

import "github.com/dekarrin/ictiobus/lrtable"

// lexicalDisambiguation narrows a set of candidate tokens per spec §4.5:
// prefer STOP over EMPTY, then keep only the longest match(es), then break
// remaining ties in favor of any `prefer`-flagged terminal. It depends only
// on the candidate set, not on input order (P6).
func lexicalDisambiguation(tokens []Token) []Token {
	if len(tokens) <= 1 {
		return tokens
	}

	hasStop := false
	for _, t := range tokens {
		if equalToken(t, StopToken) {
			hasStop = true
			break
		}
	}
	if hasStop {
		filtered := tokens[:0:0]
		for _, t := range tokens {
			if !equalToken(t, EmptyToken) {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	}

	maxLen := 0
	for _, t := range tokens {
		if len(t.Value) > maxLen {
			maxLen = len(t.Value)
		}
	}
	longest := tokens[:0:0]
	for _, t := range tokens {
		if len(t.Value) == maxLen {
			longest = append(longest, t)
		}
	}
	tokens = longest
	if len(tokens) == 1 {
		return tokens
	}

	var preferred []Token
	for _, t := range tokens {
		if t.Symbol.Prefer {
			preferred = append(preferred, t)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}

	return tokens
}

// selectShiftEmptyPreference implements spec §4.5's "shift/empty preference
// at reduce time": if the chosen action is a reduce by an epsilon
// production and a later alternative exists in the cell, take that
// alternative instead. Combined with the table's cell ordering (shift, then
// epsilon-reduce, then non-epsilon-reduce — see lrtable.State.AddOrderedActions)
// this realizes "prefer shifts over empty reductions" without the driver
// special-casing shifts at all: a shift, if present, is already first.
func selectShiftEmptyPreference(actions []lrtable.Action) lrtable.Action {
	act := actions[0]
	if act.Kind == lrtable.Reduce && act.Prod.Empty() && len(actions) > 1 {
		return actions[1]
	}
	return act
}

// dynamicDisambiguation applies a user filter to every dynamic candidate
// action in the cell, dropping those it rejects. Non-dynamic actions (shifts
// on a non-dynamic terminal, reduces of a non-dynamic production) pass
// through unfiltered.
func (p *Parser) dynamicDisambiguation(ctx *Context, actions []lrtable.Action, subresultsFor func(k int) []interface{}) []lrtable.Action {
	filter := p.opts.DynamicFilter
	var kept []lrtable.Action
	for _, a := range actions {
		switch a.Kind {
		case lrtable.Shift:
			if !ctx.TokenAhead.Symbol.Dynamic || filter(ctx, DynShift, nil) {
				kept = append(kept, a)
			}
		case lrtable.Reduce:
			if !a.Prod.Dynamic {
				kept = append(kept, a)
				continue
			}
			ctx.Production = a.Prod
			ctx.HasProduction = true
			subresults := subresultsFor(len(a.Prod.RHS))
			if filter(ctx, DynReduce, subresults) {
				kept = append(kept, a)
			}
		default:
			kept = append(kept, a)
		}
	}
	return kept
}

// hardActionCount counts shifts and non-empty reduces among actions — the
// "hard" candidates that, if more than one survives dynamic filtering,
// signal an unresolved DynamicDisambiguationConflict.
func hardActionCount(actions []lrtable.Action) int {
	n := 0
	for _, a := range actions {
		if a.Kind == lrtable.Shift {
			n++
		} else if a.Kind == lrtable.Reduce && !a.Prod.Empty() {
			n++
		}
	}
	return n
}
