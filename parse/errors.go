package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lrtable"
	"github.com/dekarrin/rosed"
)

// ParserInitError is raised at construction time when a grammar symbol names
// an action the user's namespace does not resolve. Input is always a string,
// so no whitespace-related init error arises.
type ParserInitError struct {
	Message string
}

func (e *ParserInitError) Error() string { return e.Message }

// SRConflicts is raised at construction time when the table reports
// shift/reduce conflicts that are not all covered by a dynamic filter.
type SRConflicts struct {
	Conflicts []lrtable.Conflict
}

func (e *SRConflicts) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d unresolved shift/reduce conflict(s):\n", len(e.Conflicts)))
	for _, c := range e.Conflicts {
		sb.WriteString("  " + c.String() + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RRConflicts is raised at construction time when the table reports
// reduce/reduce conflicts that are not all covered by a dynamic filter.
type RRConflicts struct {
	Conflicts []lrtable.Conflict
}

func (e *RRConflicts) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d unresolved reduce/reduce conflict(s):\n", len(e.Conflicts)))
	for _, c := range e.Conflicts {
		sb.WriteString("  " + c.String() + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ParseError is raised (or, if recovery is enabled, recorded and possibly
// recovered from) when no action applies for the current state and
// look-ahead.
type ParseError struct {
	Location     Location
	Expected     []grammar.Symbol
	TokensAhead  []Token
	SymbolBefore grammar.Symbol
}

func (e *ParseError) Error() string {
	expectedHuman := humanTerminalList(e.Expected)

	msg := rosed.Edit(fmt.Sprintf("at %s: expected %s", e.Location.String(), expectedHuman)).
		LinesWrapped(100).
		String()
	return msg
}

// humanTerminalList renders a list of terminal symbol names as an
// English "a, b, or c" sentence fragment, matching the style of
// lrParser.getExpectedString in the teacher's internal/ictiobus/parse/lr.go.
func humanTerminalList(symbols []grammar.Symbol) string {
	if len(symbols) == 0 {
		return "nothing (no action applies in this state)"
	}
	if len(symbols) == 1 {
		return symbols[0]
	}
	if len(symbols) == 2 {
		return symbols[0] + " or " + symbols[1]
	}
	all := make([]string, len(symbols))
	copy(all, symbols)
	all[len(all)-1] = "or " + all[len(all)-1]
	return strings.Join(all, ", ")
}

// DisambiguationError is raised when the lexer produces more than one
// candidate token that lexical disambiguation cannot reduce to a single
// survivor.
type DisambiguationError struct {
	Location Location
	Tokens   []Token
}

func (e *DisambiguationError) Error() string {
	names := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		names[i] = t.String()
	}
	return fmt.Sprintf("at %s: ambiguous tokens: %s", e.Location.String(), strings.Join(names, ", "))
}

// DynamicDisambiguationConflict is raised when, after syntactic (dynamic)
// filtering, more than one "hard" action remains: a shift alongside a
// non-empty reduce, or more than one non-empty reduce.
type DynamicDisambiguationConflict struct {
	Location Location
	Actions  []lrtable.Action
}

func (e *DynamicDisambiguationConflict) Error() string {
	return fmt.Sprintf("at %s: dynamic disambiguation left %d candidate actions unresolved",
		e.Location.String(), len(e.Actions))
}
