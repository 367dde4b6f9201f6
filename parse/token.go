package parse

import (
	"fmt"

	"github.com/dekarrin/ictiobus/grammar"
)

// Token is a lexeme matched from the input together with the terminal it
// was matched for. Value is the matched text (or, for non-textual input, an
// opaque value the caller's recognizers produced); Length defaults to
// len(Value) but may be set explicitly by a recognizer that wants to report
// a length distinct from Value's natural length.
type Token struct {
	Symbol grammar.Terminal
	Value  string
	Length int
}

// NewToken builds a Token whose Length defaults to len(value).
func NewToken(sym grammar.Terminal, value string) Token {
	return Token{Symbol: sym, Value: value, Length: len(value)}
}

func (t Token) String() string {
	return fmt.Sprintf("<%s(%q)>", t.Symbol.Name, t.Value)
}

// emptyTerminal and stopTerminal back the two singleton tokens below. They
// carry no recognizer because they are never produced by scanning; the
// engine injects them directly when EMPTY/STOP appears in a state's action
// cell.
var emptyTerminal = grammar.Terminal{Name: grammar.EMPTY}
var stopTerminal = grammar.Terminal{Name: grammar.STOP}

// EmptyToken is the singleton token wrapping the EMPTY grammar symbol.
var EmptyToken = Token{Symbol: emptyTerminal, Value: "", Length: 0}

// StopToken is the singleton token wrapping the STOP (end-of-input) grammar
// symbol.
var StopToken = Token{Symbol: stopTerminal, Value: "", Length: 0}

// equalToken reports whether two tokens refer to the same terminal symbol
// and carry the same value; used by lexical disambiguation to test set
// membership the way `in`/`!=` do over parglare's Token.
func equalToken(a, b Token) bool {
	return a.Symbol.Name == b.Symbol.Name && a.Value == b.Value
}
