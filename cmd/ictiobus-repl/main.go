/*
Ictiobus-repl starts an interactive session against a small built-in
arithmetic grammar, for exercising the parsing engine in
github.com/dekarrin/ictiobus/parse by hand.

Usage:

	ictiobus-repl [flags]

The flags are:

	-c, --command COMMANDS
		Immediately evaluate the given expression(s) at start and leave the
		session open. Can be multiple expressions separated by the ";"
		character.

	--config FILE
		Load session options from a TOML file: "tree" (print the parse tree
		instead of the folded value) and "trace" (same as --trace).

	-t, --tree
		Print the parse tree instead of the folded numeric value.

	--trace
		Print every shift/reduce/accept action the engine takes.

Once a session has started, each line is evaluated as a `+`/`-`/`*`/`/`
arithmetic expression over integers. Type "quit" to exit.
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/dekarrin/ictiobus/parse"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitInitError
	ExitEvalError
)

var (
	returnCode  int
	flagCommand = pflag.StringP("command", "c", "", "Evaluate the given expression(s) immediately at start, separated by ';'")
	flagTree    = pflag.BoolP("tree", "t", false, "Print the parse tree instead of the folded value")
	flagTrace   = pflag.Bool("trace", false, "Print every action the engine takes")
	flagConfig  = pflag.String("config", "", "Load a TOML config file of session options")
)

// fileConfig is the shape of the TOML file --config loads. It can only
// supplement flags, not override one the user passed explicitly.
type fileConfig struct {
	Tree  bool `toml:"tree"`
	Trace bool `toml:"trace"`
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	printTree := *flagTree
	trace := *flagTrace

	if *flagConfig != "" {
		var cfg fileConfig
		if _, err := toml.DecodeFile(*flagConfig, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: load config: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		printTree = printTree || cfg.Tree
		trace = trace || cfg.Trace
	}

	p, err := buildArithmeticParser(printTree, trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	var startCommands []string
	if *flagCommand != "" {
		startCommands = strings.Split(*flagCommand, ";")
	}
	for _, cmd := range startCommands {
		evalLine(p, strings.TrimSpace(cmd))
	}

	if err := runInteractive(p); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitEvalError
	}
}

func runInteractive(p *parse.Parser) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "ictiobus> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil // EOF or interrupt ends the session cleanly
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		// go-shellquote lets a line quote an expression containing
		// whitespace-sensitive tokens without the shell's own splitting
		// rules getting in the way of re-joining it for evaluation.
		words, err := shellquote.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %s\n", err.Error())
			continue
		}
		evalLine(p, strings.Join(words, " "))
	}
}

func evalLine(p *parse.Parser, line string) {
	if line == "" {
		return
	}
	result, err := p.Parse(line, 0, "<repl>")
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", err.Error())
		return
	}
	if node, ok := result.(parse.Node); ok {
		printNode(node, 0)
		return
	}
	fmt.Printf("= %v\n", result)
}

func printNode(n parse.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch nt := n.(type) {
	case *parse.NodeTerm:
		fmt.Printf("%s%s %q\n", indent, nt.Symbol(), nt.Token.Value)
	case *parse.NodeNonTerm:
		fmt.Printf("%s%s\n", indent, nt.Symbol())
		for _, child := range nt.Children {
			printNode(child, depth+1)
		}
	}
}

// buildArithmeticParser assembles the grammar and LR table for
//
//	Expr -> Expr '+' num | Expr '-' num | Expr '*' num | Expr '/' num | num
//
// (left-to-right evaluation, no operator precedence between the four
// operators — a deliberately small demo grammar) by hand, as the narrow
// Builder API intends: a real toolchain would derive a table like this from
// a grammar source file via LALR/SLR closure, which is explicitly out of
// scope for this engine (see DESIGN.md).
func buildArithmeticParser(printTree, trace bool) (*parse.Parser, error) {
	g := grammar.New()
	g.AddTerminal(grammar.Terminal{Name: "num", Priority: 10, ActionName: "num", Recognizer: grammar.Stateless(scanDigits)})
	for _, op := range []string{"+", "-", "*", "/"} {
		g.AddTerminal(grammar.NewTerminal(op, grammar.Literal(op)))
	}
	g.AddNonTerminal("Expr")

	id := g.AddProduction(grammar.Production{LHS: "Expr", RHS: []grammar.Symbol{"num"}, ActionName: "id"})
	addProd := g.AddProduction(grammar.Production{LHS: "Expr", RHS: []grammar.Symbol{"Expr", "+", "num"}, ActionName: "add"})
	subProd := g.AddProduction(grammar.Production{LHS: "Expr", RHS: []grammar.Symbol{"Expr", "-", "num"}, ActionName: "sub"})
	mulProd := g.AddProduction(grammar.Production{LHS: "Expr", RHS: []grammar.Symbol{"Expr", "*", "num"}, ActionName: "mul"})
	divProd := g.AddProduction(grammar.Production{LHS: "Expr", RHS: []grammar.Symbol{"Expr", "/", "num"}, ActionName: "div"})
	g.SetStart(id)

	table := buildArithmeticTable(g, g.Productions()[id], g.Productions()[addProd], g.Productions()[subProd], g.Productions()[mulProd], g.Productions()[divProd])

	actions := parse.NewActions()
	actions.Terminal["num"] = func(ctx *parse.Context, value string) interface{} {
		n, _ := strconv.Atoi(value)
		return n
	}
	actions.Production["id"] = func(ctx *parse.Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int)
	}
	actions.Production["add"] = func(ctx *parse.Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) + children[2].(int)
	}
	actions.Production["sub"] = func(ctx *parse.Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) - children[2].(int)
	}
	actions.Production["mul"] = func(ctx *parse.Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) * children[2].(int)
	}
	actions.Production["div"] = func(ctx *parse.Context, children []interface{}, a map[string]interface{}) interface{} {
		return children[0].(int) / children[2].(int)
	}

	opts := parse.DefaultOptions()
	opts.ErrorRecovery = false
	opts.BuildTree = printTree
	if !printTree {
		opts.Actions = actions
	}
	if trace {
		opts.Trace = func(msg string) { fmt.Fprintf(os.Stderr, "trace: %s\n", msg) }
	}

	return parse.New(g, table, opts)
}

// buildArithmeticTable hand-assembles the 11-state table for the grammar in
// buildArithmeticParser. Because the grammar is flat (left-recursive, but
// never nested inside parentheses), every operator reduction pops back to
// the same initial state, so there is exactly one state per "shape" the
// parser can be in rather than one per possible stack depth.
func buildArithmeticTable(g *grammar.Grammar, idProd, addProd, subProd, mulProd, divProd grammar.Production) *lrtable.Table {
	b := lrtable.NewBuilder()

	s0 := b.AddState("")
	s1 := b.AddState("num")    // Expr -> num .
	s2 := b.AddState("Expr")   // Expr -> Expr . <op> num
	s3 := b.AddState("+")      // Expr -> Expr + . num
	s4 := b.AddState("num")    // Expr -> Expr + num .
	s5 := b.AddState("-")      // Expr -> Expr - . num
	s6 := b.AddState("num")    // Expr -> Expr - num .
	s7 := b.AddState("*")      // Expr -> Expr * . num
	s8 := b.AddState("num")    // Expr -> Expr * num .
	s9 := b.AddState("/")      // Expr -> Expr / . num
	s10 := b.AddState("num")   // Expr -> Expr / num .

	opFollow := []grammar.Symbol{"+", "-", "*", "/", grammar.STOP}

	s0.AddAction("num", lrtable.NewShift(s1))
	s0.AddGoto("Expr", s2)
	s0.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})

	for _, sym := range opFollow {
		s1.AddAction(sym, lrtable.NewReduce(idProd))
	}
	// s1 is reached by shifting "num", which consumes the look-ahead that
	// chose the shift, so it needs its own recognizers to find the operator
	// that comes next rather than inheriting one from its predecessor.
	s1.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	s2.AddAction("+", lrtable.NewShift(s3))
	s2.AddAction("-", lrtable.NewShift(s5))
	s2.AddAction("*", lrtable.NewShift(s7))
	s2.AddAction("/", lrtable.NewShift(s9))
	s2.AddAction(grammar.STOP, lrtable.NewAccept())
	s2.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	s3.AddAction("num", lrtable.NewShift(s4))
	s3.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range opFollow {
		s4.AddAction(sym, lrtable.NewReduce(addProd))
	}
	s4.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	s5.AddAction("num", lrtable.NewShift(s6))
	s5.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range opFollow {
		s6.AddAction(sym, lrtable.NewReduce(subProd))
	}
	s6.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	s7.AddAction("num", lrtable.NewShift(s8))
	s7.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range opFollow {
		s8.AddAction(sym, lrtable.NewReduce(mulProd))
	}
	s8.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	s9.AddAction("num", lrtable.NewShift(s10))
	s9.SetTerminalOrder([]grammar.Symbol{"num"}, []bool{false})
	for _, sym := range opFollow {
		s10.AddAction(sym, lrtable.NewReduce(divProd))
	}
	s10.SetTerminalOrder([]grammar.Symbol{"+", "-", "*", "/"}, []bool{false, false, false, false})

	return b.Build()
}

func scanDigits(input string, pos int) string {
	start := pos
	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		pos++
	}
	return input[start:pos]
}
