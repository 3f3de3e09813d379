package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/jsonext/testhelper"
)

func TestTokenIterator(t *testing.T) {
	src := `{"a": 1} // comment`
	tokenizer := NewTokenizer(src)

	expectedTypes := []TokenType{TEXT, STRING, TEXT, LINE_COMMENT, EOF}
	expectedValues := []string{"{", `"a"`, ": 1} ", "// comment", ""}

	var (
		actualTypes  []TokenType
		actualValues []string
	)

	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)
		actualValues = append(actualValues, token.Value)
	}

	assert.Equal(t, expectedTypes, actualTypes)
	assert.Equal(t, expectedValues, actualValues)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	src := "[1, /* one */ 2] // two\n"
	tokenizer := NewTokenizer(src, TokenizerOptions{SkipComments: true})

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, []TokenType{TEXT, TEXT, TEXT, EOF}, actualTypes)
}

func TestIteratorEarlyTermination(t *testing.T) {
	tokenizer := NewTokenizer(`{"a": "b", "c": "d"}`)

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++

		if count >= 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no comments",
			input:    `{"a": [1, 2, 3]}`,
			expected: `{"a": [1, 2, 3]}`,
		},
		{
			name:     "line comment keeps newline",
			input:    "{\"a\": 1 // note\n}",
			expected: "{\"a\": 1 \n}",
		},
		{
			name:     "line comment at end of text",
			input:    "1 // trailing",
			expected: "1 ",
		},
		{
			name:     "only a line comment",
			input:    "// nothing here",
			expected: "",
		},
		{
			name:     "block comment",
			input:    `{"a": /* inline */ 1}`,
			expected: `{"a":  1}`,
		},
		{
			name:     "multi line block comment",
			input:    "[1,\n/* first\n   second */\n2]",
			expected: "[1,\n\n2]",
		},
		{
			name:     "adjacent block comments",
			input:    "1/*a*/andthis" + "/*b*/2",
			expected: "1andthis2",
		},
		{
			name:     "block comment followed by line comment",
			input:    "1/*a*/// b\n2",
			expected: "1\n2",
		},
		{
			name:     "back to back block comments",
			input:    "/*a*//*b*/x",
			expected: "x",
		},
		{
			name:     "slash star slash closes immediately",
			input:    "/*/x*/",
			expected: "x*/",
		},
		{
			name:     "comment syntax inside string",
			input:    `{"url": "http://example.com/*path*/"}`,
			expected: `{"url": "http://example.com/*path*/"}`,
		},
		{
			name:     "escaped quotes inside string",
			input:    `{"a": "say \"hi\" // not"} // c`,
			expected: `{"a": "say \"hi\" // not"} `,
		},
		{
			name:     "escaped backslash before closing quote",
			input:    `["a\\"] // c`,
			expected: `["a\\"] `,
		},
		{
			name:     "escaped quote right before closing quote keeps the string open",
			input:    `["\"", 1] // c`,
			expected: `["\"", 1] // c`,
		},
		{
			name:     "lone trailing slash",
			input:    "1 /",
			expected: "1 /",
		},
		{
			name:     "escaped slash outside string is not a comment",
			input:    `\//x`,
			expected: `\//x`,
		},
		{
			name:     "multibyte text",
			input:    `{"名前": "値"} /* コメント */`,
			expected: `{"名前": "値"} `,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Process(test.input)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestProcessDoesNotTouchStringLiterals(t *testing.T) {
	literals := []string{
		"//",
		"/*",
		"*/",
		"a // b /* c */ d",
		"http://example.com",
		"/* unterminated",
	}

	for _, literal := range literals {
		t.Run(literal, func(t *testing.T) {
			src := `{"value": "` + literal + `"} // comment`

			result, err := Process(src)
			assert.NoError(t, err)
			assert.Equal(t, `{"value": "`+literal+`"} `, result)
		})
	}
}

func TestProcessDocument(t *testing.T) {
	src := testhelper.TrimIndent(t, `
		{
			// name of the thing
			"name": "x", /* inline */
			"url": "http://example.com"
		}`)

	expected := strings.Join([]string{
		"{",
		"    ",
		`    "name": "x", `,
		`    "url": "http://example.com"`,
		"}",
	}, "\n")

	result, err := Process(src)
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	comments, err := Comments(src)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(comments))
	assert.Equal(t, Token{Type: LINE_COMMENT, Value: "// name of the thing", Position: Position{Line: 2, Column: 5, Offset: 6}}, comments[0])
	assert.Equal(t, BLOCK_COMMENT, comments[1].Type)
	assert.Equal(t, "/* inline */", comments[1].Value)
	assert.Equal(t, "3:18", comments[1].Position.String())
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOffset int
		expectedLine   int
		expectedColumn int
	}{
		{
			name:           "unterminated block comment",
			input:          "a /* b",
			expectedOffset: 3,
			expectedLine:   1,
			expectedColumn: 3,
		},
		{
			name:           "offset counts stripped text",
			input:          "/*x*/ab /* c",
			expectedOffset: 4,
			expectedLine:   1,
			expectedColumn: 9,
		},
		{
			name:           "offset on later line",
			input:          "{\n  // c\n  /* open",
			expectedOffset: 8,
			expectedLine:   3,
			expectedColumn: 3,
		},
		{
			name:           "closing sequence inside opener does not count",
			input:          "/*",
			expectedOffset: 1,
			expectedLine:   1,
			expectedColumn: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Process(test.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnterminatedComment))

			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, test.expectedOffset, syntaxErr.Offset)
			assert.Equal(t, test.expectedLine, syntaxErr.Line)
			assert.Equal(t, test.expectedColumn, syntaxErr.Column)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := Process("a /* b")
	assert.EqualError(t, err, "unterminated block comment at char 3 (line 1, column 3)")
}

func TestAllTokensReassemble(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		"{\n  \"b\": [1, 2] // list\n}",
		`["x\\", "/*"] /* c */`,
		"",
	}

	for _, input := range inputs {
		tokens, err := NewTokenizer(input).AllTokens()
		assert.NoError(t, err)
		assert.Equal(t, EOF, tokens[len(tokens)-1].Type)

		var builder strings.Builder
		for _, token := range tokens {
			builder.WriteString(token.Value)
		}

		assert.Equal(t, input, builder.String())
	}
}

func TestAllTokensStopsAtError(t *testing.T) {
	tokens, err := NewTokenizer("[1] /* open").AllTokens()
	assert.True(t, errors.Is(err, ErrUnterminatedComment))
	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, TEXT, tokens[0].Type)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "BLOCK_COMMENT", BLOCK_COMMENT.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
	assert.True(t, LINE_COMMENT.IsComment())
	assert.False(t, STRING.IsComment())
}
