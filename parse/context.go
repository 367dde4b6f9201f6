package parse

import (
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
)

// Context is the per-step snapshot the driver threads through shifts and
// reduces: the positional/state fields are overwritten at every step, while
// a small "carrier" of fields (Extra, FileName, InputStr, Parser) is copied
// forward unchanged from the previous context. This mirrors the source
// engine's `Context(context=prev)` chaining, but as a value type plus an
// explicit copy-forward rather than a linked list of owned records (see the
// context.go entry in DESIGN.md).
type Context struct {
	State         *lrtable.State
	Position      int
	StartPosition int
	EndPosition   int
	Token         Token
	TokenAhead    Token
	HasTokenAhead bool
	Production    grammar.Production
	HasProduction bool
	LayoutContent string
	LayoutAhead   string
	Node          Node

	// carrier fields: copied forward unmodified by deriveContext.
	FileName string
	InputStr string
	Parser   *Parser
	Extra    map[string]interface{}
}

// deriveContext produces a fresh Context for the next step, carrying
// forward the carrier fields (Extra, FileName, InputStr, Parser) from prev
// and leaving every positional/state field at its zero value for the caller
// to fill in explicitly.
func deriveContext(prev *Context) *Context {
	return &Context{
		FileName: prev.FileName,
		InputStr: prev.InputStr,
		Parser:   prev.Parser,
		Extra:    prev.Extra,
	}
}

// Symbol projects the grammar symbol this context is "about": the
// look-ahead-free token's terminal if a shift produced this context, else
// the production's LHS if a reduce produced it, else the tree node's
// symbol.
func (c *Context) Symbol() (grammar.Symbol, bool) {
	if c.Token.Symbol.Name != "" {
		return c.Token.Symbol.Name, true
	}
	if c.HasProduction {
		return c.Production.LHS, true
	}
	if c.Node != nil {
		return c.Node.Symbol(), true
	}
	return "", false
}
