package parse

// DynAction tags which kind of candidate action a dynamic disambiguation
// filter is being asked to judge.
type DynAction int

const (
	// DynInit is passed once, before parsing begins, to let a dynamic
	// filter initialize itself.
	DynInit DynAction = iota
	DynShift
	DynReduce
)

// DynamicFilterFunc is a user predicate over a candidate action: return true
// to keep it, false to discard it. subresults is non-nil only for DynReduce,
// holding the popped stack values the reduction would have consumed.
//
// It is called once with (ctx, DynInit, nil) before parsing begins.
type DynamicFilterFunc func(ctx *Context, action DynAction, subresults []interface{}) bool

// RecoveryFunc is a custom error recovery policy: given the context and the
// error that triggered recovery, it returns a synthetic token to inject
// (nil forces a re-lex), and/or a new position to resume from. Returning
// (nil, false-hasPosition) gives up and lets the error propagate.
type RecoveryFunc func(ctx *Context, err *ParseError) (token *Token, newPosition int, hasNewPosition bool)

// CustomTokenRecognitionFunc lets a caller override token candidate
// generation entirely. next is a continuation that runs the engine's
// default recognizer-driven candidate search; the hook may call it and
// adjust its result, ignore it and return its own candidates, or return nil
// to keep the default candidates unmodified.
type CustomTokenRecognitionFunc func(ctx *Context, next func() []Token) []Token

// TableKind distinguishes the class of LR table a Parser was built from;
// purely informational (the table itself is already built by the time the
// Parser sees it).
type TableKind int

const (
	LALR TableKind = iota
	SLR
)

// Options configures a Parser at construction time.
type Options struct {
	InLayout bool

	Actions       *Actions
	LayoutActions *Actions

	// Whitespace, if non-nil, is the set of characters skipped between
	// tokens when the grammar has no LAYOUT non-terminal. A nil value with
	// no LAYOUT non-terminal falls back to the default "\n\r\t ". An
	// explicit empty string disables whitespace skipping entirely (used
	// internally for the layout sub-parser itself).
	Whitespace *string

	ConsumeInput               bool
	BuildTree                  bool
	CallActionsDuringTreeBuild bool
	Tables                     TableKind
	ReturnPosition             bool
	StartProdID                int

	ErrorRecovery          bool
	CustomRecovery         RecoveryFunc
	DynamicFilter          DynamicFilterFunc
	CustomTokenRecognition CustomTokenRecognitionFunc
	LexicalDisambiguation  bool

	Trace func(string)
}

// DefaultOptions returns the option set parglare.Parser.__init__ defaults to:
// consume_input=true, lexical_disambiguation=true, everything else off.
func DefaultOptions() Options {
	return Options{
		ConsumeInput:          true,
		LexicalDisambiguation: true,
		StartProdID:           -1,
	}
}

// defaultWhitespace is used when no LAYOUT non-terminal is declared and no
// explicit Whitespace was configured.
const defaultWhitespace = "\n\r\t "

func effectiveWhitespace(opts Options) (string, bool) {
	if opts.Whitespace != nil {
		return *opts.Whitespace, *opts.Whitespace != ""
	}
	return defaultWhitespace, true
}
