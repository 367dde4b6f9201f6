// Package grammar holds the read-only grammar data model consumed by the
// parsing engine in package parse: symbols, terminals, productions, and the
// distinguished EMPTY/STOP symbols. None of the types here mutate once a
// Grammar is built; the engine treats a Grammar as an immutable, shareable
// input, same as an LR table from package lrtable.
//
// Building a Grammar from some front-end syntax (a BNF-like grammar DSL,
// computing FIRST/FOLLOW sets, deriving an LR table) is explicitly out of
// scope here — that belongs to a grammar-loading/table-construction
// collaborator which hands the engine a finished Grammar and Table.
package grammar

import "fmt"

// EMPTY is the distinguished symbol that matches at any position with an
// empty value. A state whose action cell includes EMPTY can always complete a
// reduction without consuming input.
const EMPTY = "EMPTY"

// STOP is the distinguished end-of-input symbol.
const STOP = "STOP"

// Symbol is the name of a terminal or non-terminal. By grammar convention (as
// in the teacher's ictiobus package) a lower-case symbol name denotes a
// terminal and a symbol with any upper-case character denotes a
// non-terminal; Grammar itself does not rely on casing, it simply tracks
// membership explicitly.
type Symbol = string

// Grammar is the set of terminal and non-terminal symbols together with the
// ordered list of productions that define a context-free language, plus the
// distinguished start production.
type Grammar struct {
	terminals    map[Symbol]Terminal
	nonTerminals map[Symbol]bool
	productions  []Production
	startProd    int
}

// New creates an empty Grammar. Use AddTerminal, AddNonTerminal, and
// AddProduction to populate it, then SetStart to designate the start
// production.
func New() *Grammar {
	return &Grammar{
		terminals:    map[Symbol]Terminal{},
		nonTerminals: map[Symbol]bool{},
		productions:  nil,
		startProd:    -1,
	}
}

// AddTerminal registers a terminal symbol and its recognizer/metadata.
func (g *Grammar) AddTerminal(t Terminal) {
	g.terminals[t.Name] = t
}

// AddNonTerminal registers a non-terminal symbol name.
func (g *Grammar) AddNonTerminal(name Symbol) {
	g.nonTerminals[name] = true
}

// AddProduction appends a production to the grammar and returns its
// prod_symbol_id (its index in definition order), which Production.ID also
// reports.
func (g *Grammar) AddProduction(p Production) int {
	p.ID = len(g.productions)
	g.productions = append(g.productions, p)
	return p.ID
}

// SetStart designates the production at the given index (as returned by
// AddProduction) as the grammar's start production.
func (g *Grammar) SetStart(prodID int) {
	g.startProd = prodID
}

// StartProduction returns the grammar's distinguished start production.
func (g *Grammar) StartProduction() Production {
	return g.productions[g.startProd]
}

// Terminals returns the terminal symbol names, in no particular order.
func (g *Grammar) Terminals() []Symbol {
	names := make([]Symbol, 0, len(g.terminals))
	for name := range g.terminals {
		names = append(names, name)
	}
	return names
}

// Terminal returns the Terminal registered under name. The second return
// value is false if no such terminal exists.
func (g *Grammar) Terminal(name Symbol) (Terminal, bool) {
	t, ok := g.terminals[name]
	return t, ok
}

// IsNonTerminal reports whether name was registered with AddNonTerminal.
func (g *Grammar) IsNonTerminal(name Symbol) bool {
	return g.nonTerminals[name]
}

// Productions returns all productions in definition order.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// HasLayout reports whether a LAYOUT non-terminal (and, by grammar
// convention, its production) has been declared.
func (g *Grammar) HasLayout() bool {
	return g.nonTerminals["LAYOUT"]
}

// LayoutProduction returns the production whose LHS is LAYOUT. It panics if
// HasLayout is false; callers must check first.
func (g *Grammar) LayoutProduction() Production {
	for _, p := range g.productions {
		if p.LHS == "LAYOUT" {
			return p
		}
	}
	panic("grammar has no LAYOUT production")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar<%d terminals, %d non-terminals, %d productions>",
		len(g.terminals), len(g.nonTerminals), len(g.productions))
}
