// Package transform encodes value kinds JSON cannot express as tagged
// strings of the form
//
//	@T(<kind>, [<payload>])
//
// and decodes them back. Encode and Decode have the shape of a
// JSON.stringify replacer and a JSON.parse reviver respectively, so they
// compose with caller hooks through Chain.
package transform

import (
	"fmt"
	"strings"
)

// Prefix starts every tag
const Prefix = "@T"

// DateLayout is the UTC timestamp layout used for date payloads
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Kind names a transformation
type Kind string

const (
	KindDate   Kind = "date"
	KindRegExp Kind = "regexp"
	KindSymbol Kind = "symbol"
	KindEscape Kind = "escape"
)

// Symbol payloads
const (
	SymbolNaN      = "NaN"
	SymbolInfinity = "Infinity"
)

var kinds = map[Kind]bool{
	KindDate:   true,
	KindRegExp: true,
	KindSymbol: true,
	KindEscape: true,
}

// Kinds returns the supported kinds in a stable order
func Kinds() []Kind {
	return []Kind{KindDate, KindRegExp, KindSymbol, KindEscape}
}

// ParseKind resolves a kind name case-insensitively
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if !kinds[kind] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
	}

	return kind, nil
}

// Define renders the tag for kind and expression
func Define(kind, expression string) (string, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return "", err
	}

	return render(k, expression), nil
}

// IsTag reports whether s starts with the tag prefix
func IsTag(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func render(kind Kind, payload string) string {
	var builder strings.Builder
	builder.Grow(len(Prefix) + len(kind) + len(payload) + 6)

	builder.WriteString(Prefix)
	builder.WriteString("(")
	builder.WriteString(string(kind))
	builder.WriteString(", [")
	builder.WriteString(payload)
	builder.WriteString("])")

	return builder.String()
}

// Hook is a per-value visitor used as replacer or reviver.
// key is the object member name, the decimal array index, or "" for the root.
type Hook func(key string, value any) (any, error)

// Chain composes hooks left to right; each sees the previous result.
// nil hooks are skipped.
func Chain(hooks ...Hook) Hook {
	return func(key string, value any) (any, error) {
		var err error

		for _, hook := range hooks {
			if hook == nil {
				continue
			}

			value, err = hook(key, value)
			if err != nil {
				return nil, err
			}
		}

		return value, nil
	}
}
