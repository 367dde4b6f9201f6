package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location describes where in the source text (and which file) a diagnostic
// applies. Line/column are computed on demand from StartPosition/EndPosition
// rather than carried eagerly, matching parglare's `pos_to_line_col`.
type Location struct {
	FileName      string
	InputStr      string
	StartPosition int
	EndPosition   int
}

// LineCol translates a byte position in InputStr to a 1-indexed
// (line, column) pair, column counted in runes. Translating on a non-UTF8,
// non-textual input (InputStr empty because the parser was fed opaque
// tokens) degenerates to (1, position).
func (l Location) LineCol(position int) (line, col int) {
	if l.InputStr == "" || position > len(l.InputStr) {
		return 1, position
	}
	upTo := l.InputStr[:position]
	line = 1 + strings.Count(upTo, "\n")
	if idx := strings.LastIndexByte(upTo, '\n'); idx >= 0 {
		col = utf8.RuneCountInString(upTo[idx+1:]) + 1
	} else {
		col = utf8.RuneCountInString(upTo) + 1
	}
	return line, col
}

func (l Location) String() string {
	line, col := l.LineCol(l.StartPosition)
	if l.FileName != "" {
		return fmt.Sprintf("%s:%d:%d", l.FileName, line, col)
	}
	return fmt.Sprintf("%d:%d", line, col)
}
