package parse

import (
	"strconv"
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSumGrammarAndTable hand-assembles the grammar and LR table for the
// single production `E -> num '+' num`, small enough to verify by
// inspection: shift num, shift '+', shift num, reduce, accept.
//
//	state 0 --num--> state 1 --+--> state 3 --num--> state 4 --reduce--> (goto E) state 2 --STOP--> accept
func buildSumGrammarAndTable(t *testing.T) (*grammar.Grammar, *lrtable.Table, grammar.Production) {
	t.Helper()

	g := grammar.New()
	g.AddTerminal(grammar.NewTerminal("num", grammar.Stateless(func(input string, pos int) string {
		start := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		return input[start:pos]
	})))
	g.AddTerminal(grammar.NewTerminal("+", grammar.Literal("+")))
	g.AddNonTerminal("E")

	prod := grammar.Production{LHS: "E", RHS: []grammar.Symbol{"num", "+", "num"}, ActionName: "sum"}
	id := g.AddProduction(prod)
	g.SetStart(id)
	prod = g.Productions()[id]

	b := lrtable.NewBuilder()
	s0 := b.AddState("")
	s1 := b.AddState("num")
	s2 := b.AddState("E")
	s3 := b.AddState("+")
	s4 := b.AddState("num")

	s0.AddAction("num", lrtable.NewShift(s1))
	s0.AddGoto("E", s2)
	s0.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})

	s1.AddAction("+", lrtable.NewShift(s3))
	s1.SetTerminalOrder([]grammar.Symbol{"+"}, []bool{false})

	s2.AddAction(grammar.STOP, lrtable.NewAccept())
	s2.SetTerminalOrder(nil, nil)

	s3.AddAction("num", lrtable.NewShift(s4))
	s3.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})

	s4.AddAction(grammar.STOP, lrtable.NewReduce(prod))
	s4.SetTerminalOrder(nil, nil)

	return g, b.Build(), prod
}

func sumActions() *Actions {
	acts := NewActions()
	acts.Terminal["num"] = func(ctx *Context, value string) interface{} {
		n, _ := strconv.Atoi(value)
		return n
	}
	acts.Production["sum"] = func(ctx *Context, children []interface{}, assignments map[string]interface{}) interface{} {
		return children[0].(int) + children[2].(int)
	}
	return acts
}

func Test_Parser_Parse_acceptsAndFoldsSum(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("2+3", 0, "")
	require.NoError(err)
	assert.Equal(5, result)
}

func Test_Parser_Parse_skipsDefaultWhitespaceBetweenTokens(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse(" 2 + 3 ", 0, "")
	require.NoError(err)
	assert.Equal(5, result)
}

func Test_Parser_Parse_errorsWithoutRecovery(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()

	p, err := New(g, table, opts)
	require.NoError(err)

	_, err = p.Parse("2+#3", 0, "")
	require.Error(err)
	var perr *ParseError
	assert.ErrorAs(err, &perr)
}

func Test_Parser_Parse_defaultRecoverySkipsOneCharacter(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()
	opts.ErrorRecovery = true

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("2+#3", 0, "")
	require.NoError(err)
	assert.Equal(5, result)
	assert.Len(p.Errors(), 1)
}

func Test_Parser_Parse_defaultRecoveryGivesUpAtEndOfInput(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()
	opts.ErrorRecovery = true

	p, err := New(g, table, opts)
	require.NoError(err)

	_, err = p.Parse("2+", 0, "")
	assert.Error(err, "recovery cannot manufacture input past end of string")
}

func Test_Parser_Parse_buildTreeProducesPositionedNodes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.BuildTree = true

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("2+3", 0, "")
	require.NoError(err)

	root, ok := result.(Node)
	require.True(ok)
	assert.Equal(0, root.Start())
	assert.Equal(3, root.End())
	assert.Equal(grammar.Symbol("E"), root.Symbol())

	nonTerm, ok := root.(*NodeNonTerm)
	require.True(ok)
	require.Len(nonTerm.Children, 3)
	assert.Equal("2", nonTerm.Children[0].(*NodeTerm).Token.Value)
	assert.Equal("+", nonTerm.Children[1].(*NodeTerm).Token.Value)
	assert.Equal("3", nonTerm.Children[2].(*NodeTerm).Token.Value)
}

func Test_Parser_CallActions_matchesInlineDispatch(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.BuildTree = true

	p, err := New(g, table, opts)
	require.NoError(err)

	tree, err := p.Parse("2+3", 0, "")
	require.NoError(err)

	dispatch, err := New(g, table, Options{ConsumeInput: true, LexicalDisambiguation: true, StartProdID: -1, Actions: sumActions()})
	require.NoError(err)

	result := dispatch.CallActions(tree.(Node), &Context{InputStr: "2+3"})
	assert.Equal(5, result)
}

func Test_Parser_Parse_customTokenRecognitionReceivesContext(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = sumActions()

	var seenPositions []int
	opts.CustomTokenRecognition = func(ctx *Context, next func() []Token) []Token {
		seenPositions = append(seenPositions, ctx.Position)
		assert.Equal("2+3", ctx.InputStr)
		return next()
	}

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("2+3", 0, "")
	require.NoError(err)
	assert.Equal(5, result)
	assert.Equal([]int{0, 1, 2}, seenPositions)
}

// buildPrecedenceGrammarAndTable hand-assembles a 15-state table (the 9
// canonical LR(0) states, with the num, F, '*' and T '*' F states duplicated
// per predecessor) for
//
//	E -> E '+' T | T
//	T -> T '*' F | F
//	F -> num
//
// the textbook expression grammar minus parentheses (left out so every state
// can be derived and checked by hand rather than by running a table
// generator). It exercises operator precedence: '*' binds tighter than '+'
// because T absorbs factors before E ever sees them.
func buildPrecedenceGrammarAndTable(t *testing.T) (*grammar.Grammar, *lrtable.Table) {
	t.Helper()

	g := grammar.New()
	g.AddTerminal(grammar.NewTerminal("num", grammar.Stateless(func(input string, pos int) string {
		start := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		return input[start:pos]
	})))
	g.AddTerminal(grammar.NewTerminal("+", grammar.Literal("+")))
	g.AddTerminal(grammar.NewTerminal("*", grammar.Literal("*")))
	g.AddNonTerminal("E")
	g.AddNonTerminal("T")
	g.AddNonTerminal("F")

	fNum := g.AddProduction(grammar.Production{LHS: "F", RHS: []grammar.Symbol{"num"}, ActionName: "fnum"})
	tF := g.AddProduction(grammar.Production{LHS: "T", RHS: []grammar.Symbol{"F"}, ActionName: "pass"})
	tMul := g.AddProduction(grammar.Production{LHS: "T", RHS: []grammar.Symbol{"T", "*", "F"}, ActionName: "mul"})
	eT := g.AddProduction(grammar.Production{LHS: "E", RHS: []grammar.Symbol{"T"}, ActionName: "pass"})
	ePlus := g.AddProduction(grammar.Production{LHS: "E", RHS: []grammar.Symbol{"E", "+", "T"}, ActionName: "add"})
	g.SetStart(eT)

	fNumProd := g.Productions()[fNum]
	tFProd := g.Productions()[tF]
	tMulProd := g.Productions()[tMul]
	eTProd := g.Productions()[eT]
	ePlusProd := g.Productions()[ePlus]

	b := lrtable.NewBuilder()
	i0 := b.AddState("")
	iF1 := b.AddState("F")
	iNum1 := b.AddState("num")
	iT := b.AddState("T")
	iE := b.AddState("E")
	iMul1 := b.AddState("*")
	iF2 := b.AddState("F")
	iNum2 := b.AddState("num")
	iPlus := b.AddState("+")
	iT2 := b.AddState("T")
	iF3 := b.AddState("F")
	iNum3 := b.AddState("num")
	iMul2 := b.AddState("*")
	iF4 := b.AddState("F")
	iNum4 := b.AddState("num")

	followPlusStop := []grammar.Symbol{"+", grammar.STOP}
	followAll := []grammar.Symbol{"+", "*", grammar.STOP}

	i0.AddAction("num", lrtable.NewShift(iNum1))
	i0.AddGoto("E", iE)
	i0.AddGoto("T", iT)
	i0.AddGoto("F", iF1)
	i0.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})

	for _, sym := range followAll {
		iF1.AddAction(sym, lrtable.NewReduce(tFProd))
	}
	for _, sym := range followAll {
		iNum1.AddAction(sym, lrtable.NewReduce(fNumProd))
	}
	// iNum1 is reached by shifting "num", which consumes the previous
	// look-ahead, so it must be able to recognize the next one itself
	// (unlike the goto-reached reduce states, which inherit the look-ahead
	// already fetched by whichever state shifted into their predecessor).
	iNum1.SetTerminalOrder([]grammar.Symbol{"+", "*"}, []bool{false, false})

	iT.AddAction("*", lrtable.NewShift(iMul1))
	for _, sym := range followPlusStop {
		iT.AddAction(sym, lrtable.NewReduce(eTProd))
	}
	iT.SetTerminalOrder([]grammar.Symbol{"*"}, []bool{false})

	iE.AddAction("+", lrtable.NewShift(iPlus))
	iE.AddAction(grammar.STOP, lrtable.NewAccept())
	iE.SetTerminalOrder([]grammar.Symbol{"+"}, []bool{false})

	iMul1.AddAction("num", lrtable.NewShift(iNum2))
	iMul1.AddGoto("F", iF2)
	iMul1.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range followAll {
		iF2.AddAction(sym, lrtable.NewReduce(tMulProd))
	}
	for _, sym := range followAll {
		iNum2.AddAction(sym, lrtable.NewReduce(fNumProd))
	}
	iNum2.SetTerminalOrder([]grammar.Symbol{"+", "*"}, []bool{false, false})

	iPlus.AddAction("num", lrtable.NewShift(iNum3))
	iPlus.AddGoto("T", iT2)
	iPlus.AddGoto("F", iF3)
	iPlus.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})

	iT2.AddAction("*", lrtable.NewShift(iMul2))
	for _, sym := range followPlusStop {
		iT2.AddAction(sym, lrtable.NewReduce(ePlusProd))
	}
	iT2.SetTerminalOrder([]grammar.Symbol{"*"}, []bool{false})

	for _, sym := range followAll {
		iF3.AddAction(sym, lrtable.NewReduce(tFProd))
	}
	for _, sym := range followAll {
		iNum3.AddAction(sym, lrtable.NewReduce(fNumProd))
	}
	iNum3.SetTerminalOrder([]grammar.Symbol{"+", "*"}, []bool{false, false})

	iMul2.AddAction("num", lrtable.NewShift(iNum4))
	iMul2.AddGoto("F", iF4)
	iMul2.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range followAll {
		iF4.AddAction(sym, lrtable.NewReduce(tMulProd))
	}
	for _, sym := range followAll {
		iNum4.AddAction(sym, lrtable.NewReduce(fNumProd))
	}
	iNum4.SetTerminalOrder([]grammar.Symbol{"+", "*"}, []bool{false, false})

	return g, b.Build()
}

func precedenceActions() *Actions {
	acts := NewActions()
	acts.Terminal["num"] = func(ctx *Context, value string) interface{} {
		n, _ := strconv.Atoi(value)
		return n
	}
	acts.Production["fnum"] = func(ctx *Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0]
	}
	acts.Production["pass"] = func(ctx *Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0]
	}
	acts.Production["add"] = func(ctx *Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) + children[2].(int)
	}
	acts.Production["mul"] = func(ctx *Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) * children[2].(int)
	}
	return acts
}

func Test_Parser_Parse_operatorPrecedenceMultiplicationBindsTighter(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table := buildPrecedenceGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = precedenceActions()

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("2+3*4", 0, "")
	require.NoError(err)
	assert.Equal(14, result, "3*4 must fold before the addition sees it")

	result, err = p.Parse("2*3+4", 0, "")
	require.NoError(err)
	assert.Equal(10, result)
}

// buildEpsilonGrammarAndTable hand-assembles a two-state table for a grammar
// whose start production is empty: S -> (nothing). State 0 offers only the
// ε-reduce (the single option in its cell), state 1 (reached via goto on S)
// accepts at STOP.
func buildEpsilonGrammarAndTable(t *testing.T) (*grammar.Grammar, *lrtable.Table, grammar.Production) {
	t.Helper()

	g := grammar.New()
	g.AddNonTerminal("S")

	prod := grammar.Production{LHS: "S", RHS: nil, ActionName: "empty"}
	id := g.AddProduction(prod)
	g.SetStart(id)
	prod = g.Productions()[id]

	b := lrtable.NewBuilder()
	s0 := b.AddState("")
	s1 := b.AddState("S")

	s0.AddAction(grammar.EMPTY, lrtable.NewReduce(prod))
	s0.AddGoto("S", s1)
	s0.SetTerminalOrder(nil, nil)

	s1.AddAction(grammar.STOP, lrtable.NewAccept())
	s1.SetTerminalOrder(nil, nil)

	return g, b.Build(), prod
}

func Test_Parser_Parse_emptyInputAcceptsWhenStartDerivesEpsilon(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, table, _ := buildEpsilonGrammarAndTable(t)

	var seenStart, seenEnd, seenPos int
	opts := DefaultOptions()
	opts.Actions = NewActions()
	opts.Actions.Production["empty"] = func(ctx *Context, children []interface{}, a map[string]interface{}) interface{} {
		seenStart = ctx.StartPosition
		seenEnd = ctx.EndPosition
		seenPos = ctx.Position
		return "ok"
	}

	p, err := New(g, table, opts)
	require.NoError(err)

	result, err := p.Parse("", 0, "")
	require.NoError(err)
	assert.Equal("ok", result)
	assert.Equal(0, seenStart, "R2: epsilon reduction context start==end==position")
	assert.Equal(0, seenEnd)
	assert.Equal(0, seenPos)
}

func Test_Parser_New_rejectsUnresolvedActionName(t *testing.T) {
	assert := assert.New(t)

	g, table, _ := buildSumGrammarAndTable(t)
	opts := DefaultOptions()
	opts.Actions = NewActions() // "sum" deliberately left unregistered

	_, err := New(g, table, opts)
	assert.Error(err)
	var initErr *ParserInitError
	assert.ErrorAs(err, &initErr)
}
