// Package parse is the runtime LR parsing engine: a shift/reduce driver over
// a precomputed grammar.Grammar and lrtable.Table, coupled with a
// state-guided scannerless lexer, a reentrant layout sub-parser, lexical and
// syntactic disambiguation, semantic dispatch (tree building or user
// actions), and error recovery.
//
// The engine never constructs a Grammar or Table itself; those are
// read-only inputs handed to New. See DESIGN.md for why table construction
// (LALR/SLR closure) is kept out of this package.
package parse

import (
	"fmt"
	"os"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parser drives a deterministic LR automaton over one grammar/table pair.
// Exactly one parse is active per Parser at a time; the grammar and table
// are immutable and may be shared across Parsers and goroutines.
type Parser struct {
	grammar *grammar.Grammar
	table   *lrtable.Table
	opts    Options

	layoutParser *Parser

	trace func(string)

	// per-parse state, reset at the start of every Parse call.
	errors          []*ParseError
	inErrorRecovery bool
}

// New constructs a Parser for the given grammar and table. Construction
// fails with a *ParserInitError if an action name referenced by the grammar
// cannot be resolved in opts.Actions, or with *SRConflicts/*RRConflicts if
// the table reports conflicts that opts.DynamicFilter does not cover.
func New(g *grammar.Grammar, table *lrtable.Table, opts Options) (*Parser, error) {
	p := &Parser{grammar: g, table: table, opts: opts, trace: opts.Trace}

	if err := p.checkActions(); err != nil {
		return nil, err
	}
	if err := p.checkConflicts(); err != nil {
		return nil, err
	}

	if !opts.InLayout && g.HasLayout() {
		layoutOpts := DefaultOptions()
		layoutOpts.InLayout = true
		layoutOpts.ConsumeInput = false
		empty := ""
		layoutOpts.Whitespace = &empty
		layoutOpts.ReturnPosition = true
		if opts.LayoutActions != nil {
			layoutOpts.Actions = opts.LayoutActions
		} else {
			layoutOpts.Actions = opts.Actions
		}
		layoutOpts.StartProdID = g.LayoutProduction().ID
		layoutParser, err := New(g, table, layoutOpts)
		if err != nil {
			return nil, err
		}
		p.layoutParser = layoutParser
	}

	return p, nil
}

// RegisterTraceListener installs fn as the parser's trace sink; every shift,
// reduce, and accept the driver performs (with the resulting state) is
// funneled through it, matching lrParser.notifyTrace in the teacher package.
func (p *Parser) RegisterTraceListener(fn func(string)) {
	p.trace = fn
}

func (p *Parser) notifyTrace(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// checkActions implements spec §4.7(i): for every terminal/production whose
// declared action name differs from the symbol name, the action namespace
// must resolve it.
func (p *Parser) checkActions() error {
	if p.opts.Actions == nil {
		return nil
	}
	for _, name := range p.grammar.Terminals() {
		term, _ := p.grammar.Terminal(name)
		if term.ActionName != "" && term.ActionName != term.Name {
			if _, ok := p.opts.Actions.resolveTerminal(term.ActionName); !ok {
				return &ParserInitError{Message: fmt.Sprintf(
					"action %q given for terminal %q doesn't exist", term.ActionName, term.Name)}
			}
		}
	}
	for _, prod := range p.grammar.Productions() {
		if prod.ActionName != "" && prod.ActionName != prod.LHS {
			if _, ok := p.opts.Actions.resolveProduction(prod.ActionName); !ok {
				return &ParserInitError{Message: fmt.Sprintf(
					"action %q given for rule %q doesn't exist", prod.ActionName, prod.LHS)}
			}
		}
	}
	return nil
}

// checkConflicts implements spec §4.7(ii)/(iii).
func (p *Parser) checkConflicts() error {
	if len(p.table.SRConflicts()) > 0 {
		unhandled := p.unhandledConflicts(p.table.SRConflicts())
		if len(unhandled) > 0 {
			return &SRConflicts{Conflicts: unhandled}
		}
	}
	if len(p.table.RRConflicts()) > 0 {
		unhandled := p.unhandledConflicts(p.table.RRConflicts())
		if len(unhandled) > 0 {
			return &RRConflicts{Conflicts: unhandled}
		}
	}
	return nil
}

func (p *Parser) unhandledConflicts(conflicts []lrtable.Conflict) []lrtable.Conflict {
	if p.opts.DynamicFilter == nil {
		return conflicts
	}
	var unhandled []lrtable.Conflict
	for _, c := range conflicts {
		if !c.Dynamic {
			unhandled = append(unhandled, c)
		}
	}
	return unhandled
}

// ParseFile reads an UTF-8 file (explicitly decoding and dropping any BOM,
// the same guarantee parglare gets from `codecs.open(path, 'r', 'utf-8')`)
// and parses its contents.
func (p *Parser) ParseFile(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s as utf-8: %w", path, err)
	}
	return p.Parse(string(decoded), 0, path)
}

// Errors returns every ParseError recorded during the most recent Parse
// call (populated even when recovery succeeded).
func (p *Parser) Errors() []*ParseError {
	return p.errors
}
