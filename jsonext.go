// Package jsonext reads and writes JSON extended with // and /* */ comments
// and with tagged strings carrying dates, regular expressions, NaN and
// Infinity.
//
// Parsing strips comments (see the tokenizer package), decodes the strict
// text with a standard JSON implementation and revives tagged strings
// through a per-value hook. Stringify runs the same protocol backwards, so
//
//	v2, _ := jsonext.Parse(must(jsonext.Stringify(v, nil, "")), nil)
//
// gives back an equal value for every supported kind. Output is plain JSON;
// tags are ordinary strings to any other reader.
package jsonext

import (
	"strings"
	"unicode/utf8"

	"github.com/shibukawa/jsonext/tokenizer"
	"github.com/shibukawa/jsonext/transform"
)

// Replacer selects how Stringify visits values: nil, a ReplacerFunc or an Allowlist.
type Replacer interface {
	replacer()
}

// ReplacerFunc is called for every value after tag encoding; its result is
// written instead of the value. Return Undefined to drop the member.
type ReplacerFunc func(key string, value any) (any, error)

func (ReplacerFunc) replacer() {}

// Allowlist keeps only the listed object member names. Tag encoding is
// skipped and values are written in their plain JSON form.
type Allowlist []string

func (Allowlist) replacer() {}

func (a Allowlist) set() map[string]bool {
	allowed := make(map[string]bool, len(a))
	for _, name := range a {
		allowed[name] = true
	}

	return allowed
}

// Reviver is called for every parsed value after tag decoding, children
// before parents. Its result replaces the value; Undefined removes it.
type Reviver func(key string, value any) (any, error)

type undefined struct{}

// Undefined may be returned from a ReplacerFunc or Reviver to omit a value.
// Omitted object members disappear, omitted array elements become null.
var Undefined any = undefined{}

// maxIndent is the longest indentation Stringify honours
const maxIndent = 10

// Process removes comments from JSONext text, leaving strict JSON.
func Process(text string) (string, error) {
	return tokenizer.Process(text)
}

// DefineTransformation renders a tag such as "@T(date, [x])".
// kind must be one of date, regexp, symbol or escape (any case).
func DefineTransformation(kind, expression string) (string, error) {
	return transform.Define(kind, expression)
}

// Indent returns an indentation of n spaces, capped like Stringify caps it.
func Indent(n int) string {
	return strings.Repeat(" ", max(0, min(n, maxIndent)))
}

func capIndent(space string) string {
	if utf8.RuneCountInString(space) <= maxIndent {
		return space
	}

	return string([]rune(space)[:maxIndent])
}
