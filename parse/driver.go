package parse

import (
	"fmt"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/internal/stack"
	"github.com/dekarrin/ictiobus/lrtable"
)

// Parse runs the shift/reduce driver over input starting at position,
// returning the semantic value of the accepted parse (a Node if BuildTree is
// set, otherwise whatever the registered actions produced).
func (p *Parser) Parse(input string, position int, fileName string) (interface{}, error) {
	result, _, err := p.parsePositionWithContext(input, position, fileName, nil)
	return result, err
}

// ParsePosition runs the driver starting at the given byte position and also
// reports the position just past what was consumed. The layout sub-parser
// gets the same position through parsePositionWithContext.
func (p *Parser) ParsePosition(input string, position int, fileName string) (interface{}, int, error) {
	return p.parsePositionWithContext(input, position, fileName, nil)
}

// parsePositionWithContext is the engine's single entry point: Parse,
// ParsePosition, ParseFile, and a reentrant layout sub-parser invocation
// (see layout.go) all funnel through it. parentCtx, when non-nil, supplies
// Extra to carry forward into the nested parse; it contributes nothing else.
func (p *Parser) parsePositionWithContext(input string, position int, fileName string, parentCtx *Context) (interface{}, int, error) {
	p.errors = nil
	p.inErrorRecovery = false

	var extra map[string]interface{}
	if parentCtx != nil {
		extra = parentCtx.Extra
	}
	carrier := &Context{FileName: fileName, InputStr: input, Parser: p, Extra: extra}

	if p.opts.DynamicFilter != nil {
		p.opts.DynamicFilter(carrier, DynInit, nil)
	}

	var states stack.Stack[*lrtable.State]
	var values stack.Stack[interface{}]
	var contexts stack.Stack[*Context]
	states.Push(p.table.Initial())

	pos := position
	var forced *Token

	// pending is the look-ahead already recognized for the current position
	// but not yet consumed by a shift — carried forward across a Reduce the
	// same way top_stack_context.token_ahead survives a reduce in the
	// original engine, so a reduce chain never re-lexes a position it has
	// already scanned. pendingLayout is the leading layout that went with
	// it, restored onto the next context so a subsequent shift still sees
	// the right LayoutContent.
	var pending *Token
	var pendingLayout string

	for {
		ctx := deriveContext(carrier)
		ctx.State = states.Peek()
		ctx.Position = pos

		var tok Token
		switch {
		case forced != nil:
			tok = *forced
			forced = nil
		case pending != nil:
			tok = *pending
			ctx.LayoutAhead = pendingLayout
			pending = nil
			pendingLayout = ""
		default:
			if !p.opts.InLayout {
				if err := p.skipLayout(ctx); err != nil {
					return nil, ctx.Position, err
				}
				pos = ctx.Position
			}
			var err error
			tok, err = p.nextToken(ctx)
			if err != nil {
				return nil, ctx.Position, err
			}
		}
		ctx.TokenAhead = tok
		ctx.HasTokenAhead = true

		actions, ok := ctx.State.Actions(tok.Symbol.Name)

		if ok && p.opts.DynamicFilter != nil {
			actions = p.dynamicDisambiguation(ctx, actions, func(k int) []interface{} {
				return values.PeekTopN(k)
			})
			ok = len(actions) > 0
		}

		if ok && hardActionCount(actions) > 1 {
			return nil, ctx.Position, &DynamicDisambiguationConflict{
				Location: Location{FileName: fileName, InputStr: input, StartPosition: ctx.Position, EndPosition: ctx.Position},
				Actions:  actions,
			}
		}

		if !ok {
			var parseErr *ParseError
			if p.inErrorRecovery && len(p.errors) > 0 {
				parseErr = p.errors[len(p.errors)-1]
				parseErr.Location.EndPosition = ctx.Position
			} else {
				parseErr = p.buildParseError(ctx)
				p.errors = append(p.errors, parseErr)
			}

			recTok, newPos, recovered := p.recover(ctx, parseErr)
			if !recovered {
				return nil, ctx.Position, parseErr
			}
			p.inErrorRecovery = true
			pos = newPos
			forced = recTok
			continue
		}
		p.inErrorRecovery = false

		act := selectShiftEmptyPreference(actions)

		switch act.Kind {
		case lrtable.Shift:
			ctx.StartPosition = ctx.Position
			ctx.EndPosition = ctx.Position + tok.Length
			ctx.Token = tok
			ctx.LayoutContent = ctx.LayoutAhead

			value := p.callShiftAction(ctx)
			states.Push(act.Next)
			values.Push(value)
			contexts.Push(ctx)
			pos = ctx.EndPosition
			p.notifyTrace("shift %s, state -> %s", tok.String(), act.Next.ID())
			carrier = ctx

		case lrtable.Reduce:
			n := len(act.Prod.RHS)
			subresults := values.PopN(n)
			states.PopN(n)
			poppedCtxs := contexts.PopN(n)

			ctx.Production = act.Prod
			ctx.HasProduction = true
			if n > 0 {
				ctx.StartPosition = poppedCtxs[0].StartPosition
				ctx.LayoutContent = poppedCtxs[0].LayoutContent
			} else {
				ctx.StartPosition = ctx.Position
				ctx.LayoutContent = ""
			}
			ctx.EndPosition = ctx.Position

			value := p.callReduceAction(ctx, subresults)

			top := states.Peek()
			next, ok := top.Goto(act.Prod.LHS)
			if !ok {
				return nil, ctx.Position, fmt.Errorf("no goto for %q from state %s", act.Prod.LHS, top.ID())
			}
			states.Push(next)
			values.Push(value)
			contexts.Push(ctx)
			p.notifyTrace("reduce by %s, state -> %s", act.Prod.String(), next.ID())
			carrier = ctx
			if !equalToken(tok, EmptyToken) {
				// EMPTY is a synthetic marker that selected this epsilon
				// reduction, not a real look-ahead the goto state should be
				// asked to act on, so it isn't carried forward; a genuine
				// token still gets reused without a re-lex.
				pending = &tok
				pendingLayout = ctx.LayoutAhead
			}

		case lrtable.Accept:
			p.notifyTrace("accept")
			var result interface{}
			if values.Len() > 0 {
				result = values.Peek()
			}
			return result, ctx.Position, nil
		}
	}
}

// buildParseError assembles the diagnostic for a state/look-ahead pair that
// has no applicable action.
func (p *Parser) buildParseError(ctx *Context) *ParseError {
	return &ParseError{
		Location: Location{
			FileName:      ctx.FileName,
			InputStr:      ctx.InputStr,
			StartPosition: ctx.Position,
			EndPosition:   ctx.Position,
		},
		Expected:     expectedSymbols(ctx.State),
		TokensAhead:  p.allPossibleTokensAhead(ctx),
		SymbolBefore: ctx.State.Symbol(),
	}
}

// expectedSymbols reports the real terminals a state would act on, excluding
// the synthetic EMPTY/STOP bookkeeping symbols from the human-facing list.
func expectedSymbols(state *lrtable.State) []grammar.Symbol {
	var out []grammar.Symbol
	for _, sym := range state.ActionSymbols() {
		if sym == grammar.EMPTY || sym == grammar.STOP {
			continue
		}
		out = append(out, sym)
	}
	return out
}

// recover decides how to continue after a ParseError: via opts.CustomRecovery
// if configured, else the default policy (skip one byte, give up at end of
// input). It does nothing, and reports no recovery, when opts.ErrorRecovery
// is false.
func (p *Parser) recover(ctx *Context, parseErr *ParseError) (tok *Token, newPosition int, recovered bool) {
	if !p.opts.ErrorRecovery {
		return nil, 0, false
	}

	if p.opts.CustomRecovery != nil {
		t, pos, hasPos := p.opts.CustomRecovery(ctx, parseErr)
		if t == nil && !hasPos {
			return nil, 0, false
		}
		if !hasPos {
			pos = ctx.Position
		}
		return t, pos, true
	}

	if ctx.Position >= len(ctx.InputStr) {
		return nil, 0, false
	}
	return nil, ctx.Position + 1, true
}
