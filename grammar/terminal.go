package grammar

// StatelessRecognizer recognizes a terminal purely from the input and a
// position, with no access to parse context. It returns the matched lexeme
// (the value consumed) or an empty string if there is no match at position.
type StatelessRecognizer func(input string, position int) string

// StatefulRecognizer recognizes a terminal the same way but additionally
// receives the parse context (see package parse). This is how a recognizer
// reads state threaded through Context.Extra, e.g. an INDENT terminal that
// consults an indent width set by a caller.
//
// The ctx parameter is declared as `interface{}` here to avoid an import
// cycle between grammar and parse (parse imports grammar for Terminal, not
// the reverse); parse.Context satisfies it and the engine always passes its
// own *parse.Context.
type StatefulRecognizer func(ctx interface{}, input string, position int) string

// Recognizer is the capability set a Terminal carries for lexical
// recognition. Exactly one of Stateless or Stateful is set; this is decided
// once at terminal registration, not sniffed from a function's arity at call
// time.
type Recognizer struct {
	Stateless StatelessRecognizer
	Stateful  StatefulRecognizer
}

// IsStateful reports whether this recognizer needs the parse context.
func (r Recognizer) IsStateful() bool {
	return r.Stateful != nil
}

// Stateless wraps a position-only recognizer function.
func Stateless(fn StatelessRecognizer) Recognizer {
	return Recognizer{Stateless: fn}
}

// Stateful wraps a context-aware recognizer function.
func Stateful(fn StatefulRecognizer) Recognizer {
	return Recognizer{Stateful: fn}
}

// Literal returns a Recognizer that matches the given literal string
// case-sensitively at position.
func Literal(s string) Recognizer {
	return Stateless(func(input string, position int) string {
		end := position + len(s)
		if end > len(input) {
			return ""
		}
		if input[position:end] == s {
			return s
		}
		return ""
	})
}

// Terminal is a terminal symbol together with its lexical metadata: a
// recognizer, a priority (higher attempted first), a prefer flag (tiebreak
// on equal-length matches), a finish flag (stop trying lower-priority
// terminals once this one matches), a dynamic flag (subject to syntactic
// disambiguation), and an optional semantic action name.
type Terminal struct {
	Name       Symbol
	Recognizer Recognizer
	Priority   int
	Prefer     bool
	Finish     bool
	Dynamic    bool
	ActionName string
}

// NewTerminal builds a Terminal whose ActionName defaults to its own Name
// (the common case: the action registered for a terminal is named after the
// terminal itself, so Parser construction need not validate it against the
// action namespace — see parse package C9).
func NewTerminal(name Symbol, r Recognizer) Terminal {
	return Terminal{Name: name, Recognizer: r, ActionName: name}
}
