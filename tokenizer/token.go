package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnterminatedComment = errors.New("unterminated block comment")
)

// SyntaxError reports a scan failure.
// Offset is the 1-based character offset of the failing sequence within the
// comment-stripped text produced so far. Line and Column locate it in the
// original input.
type SyntaxError struct {
	Err    error
	Offset int
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at char %d (line %d, column %d)", e.Err, e.Offset, e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// TokenType represents the type of a token
type TokenType int

const (
	EOF           TokenType = iota
	TEXT                    // anything outside string literals and comments
	STRING                  // "..." literal, quotes included
	LINE_COMMENT            // // line comment, newline excluded
	BLOCK_COMMENT           // /* block comment */
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case TEXT:
		return "TEXT"
	case STRING:
		return "STRING"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	default:
		return "UNKNOWN"
	}
}

// IsComment reports whether the token type is a comment.
func (t TokenType) IsComment() bool {
	return t == LINE_COMMENT || t == BLOCK_COMMENT
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a verbatim span of the source text
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
