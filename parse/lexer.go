package parse

import "github.com/dekarrin/ictiobus/grammar"

// nextToken computes the single look-ahead token at ctx.Position, resolving
// lexical disambiguation down to exactly one candidate. Per spec §4.3, zero
// candidates degenerate to EmptyToken (which the driver will then reject as
// "no applicable action", raising a proper parse error) rather than being an
// error in their own right.
func (p *Parser) nextToken(ctx *Context) (Token, error) {
	tokens, err := p.nextTokens(ctx)
	if err != nil {
		return Token{}, err
	}
	switch len(tokens) {
	case 0:
		return EmptyToken, nil
	case 1:
		return tokens[0], nil
	default:
		return Token{}, &DisambiguationError{
			Location: Location{FileName: ctx.FileName, InputStr: ctx.InputStr, StartPosition: ctx.Position, EndPosition: ctx.Position},
			Tokens:   tokens,
		}
	}
}

// nextTokens gathers every candidate token relevant to ctx.State at
// ctx.Position: EMPTY/STOP if the state's action cell allows them, plus
// whatever the state's terminal recognizers match, optionally overridden by
// a custom recognition hook, then narrowed by lexical disambiguation.
func (p *Parser) nextTokens(ctx *Context) ([]Token, error) {
	state := ctx.State
	inLen := len(ctx.InputStr)

	var tokens []Token
	if state.HasAction(grammar.EMPTY) {
		tokens = append(tokens, EmptyToken)
	}
	if state.HasAction(grammar.STOP) {
		if !p.opts.ConsumeInput || ctx.Position == inLen {
			tokens = append(tokens, StopToken)
		}
	}

	if ctx.Position < inLen {
		if p.opts.CustomTokenRecognition != nil {
			next := func() []Token { return p.tokenRecognition(ctx) }
			if custom := p.opts.CustomTokenRecognition(ctx, next); custom != nil {
				tokens = append(tokens, custom...)
			} else {
				tokens = append(tokens, p.tokenRecognition(ctx)...)
			}
		} else {
			tokens = append(tokens, p.tokenRecognition(ctx)...)
		}
	}

	if p.opts.LexicalDisambiguation {
		tokens = lexicalDisambiguation(tokens)
	}

	return tokens, nil
}

// tokenRecognition tries each terminal the current state expects, in
// descending-priority order, stopping once a lower-priority terminal is
// reached after at least one candidate has matched, or immediately after any
// match whose terminal has its finish flag set.
func (p *Parser) tokenRecognition(ctx *Context) []Token {
	terms := ctx.State.Terminals()
	finishFlags := ctx.State.FinishFlags()

	var tokens []Token
	lastPriority := -1
	for i, name := range terms {
		term, ok := p.grammar.Terminal(name)
		if !ok {
			continue
		}
		if term.Priority < lastPriority && len(tokens) > 0 {
			break
		}
		lastPriority = term.Priority

		match := p.recognize(term, ctx)
		if match != "" {
			tokens = append(tokens, NewToken(term, match))
			if i < len(finishFlags) && finishFlags[i] {
				break
			}
		}
	}
	return tokens
}

// recognize runs a single terminal's recognizer against the input at
// ctx.Position, dispatching to the stateless or stateful form as recorded on
// the Terminal (see grammar.Recognizer) rather than sniffing a function's
// arity at call time.
func (p *Parser) recognize(term grammar.Terminal, ctx *Context) string {
	if term.Recognizer.IsStateful() {
		return term.Recognizer.Stateful(ctx, ctx.InputStr, ctx.Position)
	}
	if term.Recognizer.Stateless != nil {
		return term.Recognizer.Stateless(ctx.InputStr, ctx.Position)
	}
	return ""
}

// allPossibleTokensAhead tries every grammar terminal at ctx.Position,
// regardless of the current state, for use in diagnostics (spec §4.8).
func (p *Parser) allPossibleTokensAhead(ctx *Context) []Token {
	if ctx.Position >= len(ctx.InputStr) {
		return nil
	}
	var tokens []Token
	for _, name := range p.grammar.Terminals() {
		term, _ := p.grammar.Terminal(name)
		if match := p.recognize(term, ctx); match != "" {
			tokens = append(tokens, NewToken(term, match))
		}
	}
	return tokens
}
