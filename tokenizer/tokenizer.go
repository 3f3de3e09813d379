package tokenizer

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer splits JSONext text into verbatim spans of text, string literals and comments
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipComments bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	var opts TokenizerOptions
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens.
// A scan error is yielded once and ends the sequence.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{
			input:  t.input,
			line:   1,
			column: 1,
		}

		for {
			token, err := s.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipComments && token.Type.IsComment() {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, EOF included
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Process converts JSONext text into strict JSON text by removing every
// comment outside string literals. The input is never modified.
func Process(text string) (string, error) {
	var builder strings.Builder
	builder.Grow(len(text))

	for token, err := range NewTokenizer(text, TokenizerOptions{SkipComments: true}).Tokens() {
		if err != nil {
			return "", err
		}

		builder.WriteString(token.Value)
	}

	return builder.String(), nil
}

// Comments returns the comments found outside string literals
func Comments(text string) ([]Token, error) {
	var comments []Token

	for token, err := range NewTokenizer(text).Tokens() {
		if err != nil {
			return nil, err
		}

		if token.Type.IsComment() {
			comments = append(comments, token)
		}
	}

	return comments, nil
}

// scanner holds the per-scan state
type scanner struct {
	input    string
	position int
	line     int
	column   int

	inString      bool
	pendingEscape bool

	// emitted counts the characters of non-comment tokens produced so far
	emitted int
}

// nextToken gets the next token
func (s *scanner) nextToken() (Token, error) {
	if s.position >= len(s.input) {
		return Token{Type: EOF, Position: s.here()}, nil
	}

	switch {
	case s.input[s.position] == '"':
		return s.readString(), nil
	case s.atComment("//"):
		return s.readLineComment(), nil
	case s.atComment("/*"):
		return s.readBlockComment()
	default:
		return s.readText(), nil
	}
}

// atComment reports whether a comment opener starts at the cursor.
// Callers only ask this outside string literals.
func (s *scanner) atComment(opener string) bool {
	return !s.pendingEscape && strings.HasPrefix(s.input[s.position:], opener)
}

// step applies one character to the string and escape state.
//
// A backslash toggles the pending escape. A quote opens a string, or closes
// it unless an escape is pending; an escaped quote leaves the escape pending.
// Any other character consumes a pending escape.
func (s *scanner) step(c byte) {
	switch c {
	case '\\':
		s.pendingEscape = !s.pendingEscape
	case '"':
		if !s.inString {
			s.inString = true
		} else if !s.pendingEscape {
			s.inString = false
		}
	default:
		s.pendingEscape = false
	}
}

// readText reads characters up to the next string literal or comment
func (s *scanner) readText() Token {
	start := s.here()
	begin := s.position

	for s.position < len(s.input) {
		c := s.input[s.position]
		if c == '"' || s.atComment("//") || s.atComment("/*") {
			break
		}

		s.step(c)
		s.advanceTo(s.position + 1)
	}

	return s.emit(TEXT, s.input[begin:s.position], start)
}

// readString reads a string literal. An unterminated literal runs to the end
// of the input.
func (s *scanner) readString() Token {
	start := s.here()
	begin := s.position

	s.step(s.input[s.position])
	s.advanceTo(s.position + 1)

	for s.position < len(s.input) && s.inString {
		s.step(s.input[s.position])
		s.advanceTo(s.position + 1)
	}

	return s.emit(STRING, s.input[begin:s.position], start)
}

// readLineComment reads a line comment, leaving the newline in place
func (s *scanner) readLineComment() Token {
	start := s.here()
	begin := s.position

	end := strings.IndexByte(s.input[begin:], '\n')
	if end < 0 {
		end = len(s.input)
	} else {
		end += begin
	}

	s.advanceTo(end)

	return Token{Type: LINE_COMMENT, Value: s.input[begin:end], Position: start}
}

// readBlockComment reads a block comment. The closing sequence is searched
// from the character after the slash.
func (s *scanner) readBlockComment() (Token, error) {
	start := s.here()
	begin := s.position

	closing := strings.Index(s.input[begin+1:], "*/")
	if closing < 0 {
		return Token{}, &SyntaxError{
			Err:    ErrUnterminatedComment,
			Offset: s.emitted + 1,
			Line:   start.Line,
			Column: start.Column,
		}
	}

	end := begin + 1 + closing + len("*/")
	s.advanceTo(end)

	return Token{Type: BLOCK_COMMENT, Value: s.input[begin:end], Position: start}, nil
}

// emit creates a non-comment token and counts its characters
func (s *scanner) emit(tokenType TokenType, value string, start Position) Token {
	s.emitted += utf8.RuneCountInString(value)

	return Token{Type: tokenType, Value: value, Position: start}
}

// advanceTo moves the cursor to end, tracking line and column
func (s *scanner) advanceTo(end int) {
	for ; s.position < end; s.position++ {
		c := s.input[s.position]

		switch {
		case c == '\n':
			s.line++
			s.column = 1
		case utf8.RuneStart(c):
			s.column++
		}
	}
}

// here returns the cursor position
func (s *scanner) here() Position {
	return Position{
		Line:   s.line,
		Column: s.column,
		Offset: s.position,
	}
}
