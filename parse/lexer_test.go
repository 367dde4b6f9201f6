package parse

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/stretchr/testify/assert"
)

func digitsRecognizer() grammar.Recognizer {
	return grammar.Stateless(func(input string, pos int) string {
		start := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		return input[start:pos]
	})
}

func newTestGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddTerminal(grammar.Terminal{Name: "num", Recognizer: digitsRecognizer(), Priority: 10, ActionName: "num"})
	g.AddTerminal(grammar.NewTerminal("+", grammar.Literal("+")))
	g.AddNonTerminal("E")
	return g
}

func Test_tokenRecognition_stopsAtFirstLowerPriorityMatch(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.AddTerminal(grammar.Terminal{Name: "kw", Recognizer: grammar.Literal("if"), Priority: 10})
	g.AddTerminal(grammar.Terminal{Name: "id", Recognizer: digitsRecognizer(), Priority: 5})

	p := &Parser{grammar: g}

	s := lrtable.NewState(0, "")
	s.SetTerminalOrder([]grammar.Symbol{"kw", "id"}, []bool{false, false})

	ctx := &Context{State: s, InputStr: "if", Position: 0}
	toks := p.tokenRecognition(ctx)

	assert.Len(toks, 1)
	assert.Equal("kw", toks[0].Symbol.Name)
}

func Test_tokenRecognition_finishFlagStopsEarly(t *testing.T) {
	assert := assert.New(t)

	g := newTestGrammar()
	g.AddTerminal(grammar.Terminal{Name: "int", Recognizer: digitsRecognizer(), Priority: 10})
	p := &Parser{grammar: g}

	// "int" has the same priority as "num" and would also match "42", so
	// only the finish flag on "num" keeps it out of the result.
	s := lrtable.NewState(0, "")
	s.SetTerminalOrder([]grammar.Symbol{"num", "int"}, []bool{true, false})

	ctx := &Context{State: s, InputStr: "42", Position: 0}
	toks := p.tokenRecognition(ctx)

	assert.Len(toks, 1)
	assert.Equal("42", toks[0].Value)
}

func Test_nextTokens_includesEmptyAndStopWhenStateAllows(t *testing.T) {
	assert := assert.New(t)

	g := newTestGrammar()
	p := &Parser{grammar: g, opts: DefaultOptions()}

	s := lrtable.NewState(0, "")
	s.AddAction(grammar.EMPTY, lrtable.NewReduce(grammar.Production{LHS: "E"}))
	s.AddAction(grammar.STOP, lrtable.NewAccept())
	s.SetTerminalOrder(nil, nil)

	ctx := &Context{State: s, InputStr: "", Position: 0}
	toks, err := p.nextTokens(ctx)

	assert.NoError(err)
	assert.Len(toks, 1, "STOP beats EMPTY per lexicalDisambiguation even with no real candidates")
	assert.Equal(grammar.STOP, toks[0].Symbol.Name)
}

func Test_recognize_dispatchesStatefulAndStateless(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	stateless := grammar.NewTerminal("num", digitsRecognizer())
	stateful := grammar.Terminal{Name: "indent", Recognizer: grammar.Stateful(func(ctx interface{}, input string, position int) string {
		c := ctx.(*Context)
		want, _ := c.Extra["width"].(string)
		if position+len(want) <= len(input) && input[position:position+len(want)] == want {
			return want
		}
		return ""
	})}
	g.AddTerminal(stateless)
	g.AddTerminal(stateful)

	p := &Parser{grammar: g}
	ctx := &Context{InputStr: "  x", Position: 0, Extra: map[string]interface{}{"width": "  "}}

	assert.Equal("  ", p.recognize(stateful, ctx))
	assert.Equal("", p.recognize(stateless, ctx), "digits recognizer finds nothing at a position full of spaces")
}
