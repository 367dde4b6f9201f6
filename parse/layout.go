package parse

// skipLayout consumes whatever skippable content (whitespace/comments)
// precedes ctx.Position, recording it as ctx.LayoutAhead and advancing
// ctx.Position past it. It does nothing for a layout parser itself (no
// layout-before-layout recursion) — the driver only calls this when
// opts.InLayout is false (P4: at most one layout scan per look-ahead).
func (p *Parser) skipLayout(ctx *Context) error {
	ctx.LayoutAhead = ""

	if p.layoutParser != nil {
		result, pos, err := p.layoutParser.parsePositionWithContext(ctx.InputStr, ctx.Position, ctx.FileName, ctx)
		_ = result
		if err != nil {
			return err
		}
		if pos > ctx.Position {
			ctx.LayoutAhead = ctx.InputStr[ctx.Position:pos]
			ctx.Position = pos
		}
		return nil
	}

	ws, active := effectiveWhitespace(p.opts)
	if !active {
		return nil
	}
	if ctx.InputStr == "" {
		return nil
	}
	old := ctx.Position
	for ctx.Position < len(ctx.InputStr) && containsByte(ws, ctx.InputStr[ctx.Position]) {
		ctx.Position++
	}
	ctx.LayoutAhead = ctx.InputStr[old:ctx.Position]
	return nil
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
