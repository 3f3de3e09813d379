package transform

import (
	"errors"
	"math"
	"regexp"
	"regexp/syntax"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestDefine(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		expression string
		expected   string
	}{
		{"date", "date", "x", "@T(date, [x])"},
		{"symbol", "symbol", "NaN", "@T(symbol, [NaN])"},
		{"escape", "escape", "@T(date, [y])", "@T(escape, [@T(date, [y])])"},
		{"regexp", "regexp", "^a+$", "@T(regexp, [^a+$])"},
		{"upper case kind", "DATE", "x", "@T(date, [x])"},
		{"empty expression", "escape", "", "@T(escape, [])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Define(tt.kind, tt.expression)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefineUnsupportedKind(t *testing.T) {
	_, err := Define("bogus", "x")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
	assert.Contains(t, err.Error(), "bogus")
}

func TestEncode(t *testing.T) {
	date := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	local := time.Date(2019, time.January, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	tests := []struct {
		name     string
		value    any
		expected any
	}{
		{"NaN", math.NaN(), "@T(symbol, [NaN])"},
		{"float32 NaN", float32(math.NaN()), "@T(symbol, [NaN])"},
		{"Infinity", math.Inf(1), "@T(symbol, [Infinity])"},
		{"negative Infinity is not tagged", math.Inf(-1), math.Inf(-1)},
		{"date", date, "@T(date, [Tue, 01 Jan 2019 00:00:00 GMT])"},
		{"date pointer", &date, "@T(date, [Tue, 01 Jan 2019 00:00:00 GMT])"},
		{"date in other zone", local, "@T(date, [Tue, 01 Jan 2019 00:00:00 GMT])"},
		{"regexp", regexp.MustCompile(`^\d+$`), `@T(regexp, [^\d+$])`},
		{"string with prefix", "@T is here", "@T(escape, [@T is here])"},
		{"plain string", "hello", "hello"},
		{"prefix not at start", "x@T", "x@T"},
		{"number", 1.5, 1.5},
		{"bool", true, true},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Encode("key", tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEncodeNilPointers(t *testing.T) {
	var date *time.Time
	result, err := Encode("", date)
	assert.NoError(t, err)
	assert.Equal(t, any(date), result)

	var re *regexp.Regexp
	result, err = Encode("", re)
	assert.NoError(t, err)
	assert.Equal(t, any(re), result)
}

func TestDecode(t *testing.T) {
	t.Run("date", func(t *testing.T) {
		result, err := Decode("d", "@T(date, [Tue, 01 Jan 2019 00:00:00 GMT])")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), result.(time.Time))
	})

	t.Run("date in RFC3339", func(t *testing.T) {
		result, err := Decode("d", "@T(date, [2019-01-01T09:00:00+09:00])")
		assert.NoError(t, err)
		assert.True(t, result.(time.Time).Equal(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("regexp", func(t *testing.T) {
		result, err := Decode("r", `@T(regexp, [^a\]b$])`)
		assert.NoError(t, err)
		assert.Equal(t, `^a\]b$`, result.(*regexp.Regexp).String())
	})

	t.Run("escape", func(t *testing.T) {
		result, err := Decode("s", "@T(escape, [@T(date, [x])])")
		assert.NoError(t, err)
		assert.Equal(t, any("@T(date, [x])"), result)
	})

	t.Run("escape keeps whitespace", func(t *testing.T) {
		result, err := Decode("s", "@T(escape, [ @T padded ])")
		assert.NoError(t, err)
		assert.Equal(t, any(" @T padded "), result)
	})

	t.Run("escape spanning lines", func(t *testing.T) {
		result, err := Decode("s", "@T(escape, [@T\nsecond line])")
		assert.NoError(t, err)
		assert.Equal(t, any("@T\nsecond line"), result)
	})

	t.Run("NaN", func(t *testing.T) {
		result, err := Decode("n", "@T(symbol, [NaN])")
		assert.NoError(t, err)
		assert.True(t, math.IsNaN(result.(float64)))
	})

	t.Run("Infinity", func(t *testing.T) {
		result, err := Decode("n", "@T(symbol, [infinity])")
		assert.NoError(t, err)
		assert.True(t, math.IsInf(result.(float64), 1))
	})

	t.Run("kind is case insensitive", func(t *testing.T) {
		result, err := Decode("n", "@T(SYMBOL, [NaN])")
		assert.NoError(t, err)
		assert.True(t, math.IsNaN(result.(float64)))
	})

	t.Run("passthrough", func(t *testing.T) {
		for _, value := range []any{"plain", 1.0, true, nil, []any{"@T(date, [x])"}} {
			result, err := Decode("k", value)
			assert.NoError(t, err)
			assert.Equal(t, value, result)
		}
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected error
		contains string
	}{
		{"missing parentheses", "@Tdate, [x]", ErrMalformedTag, `"field"`},
		{"missing closing parenthesis", "@T(date, [x]", ErrMalformedTag, `"field"`},
		{"bare prefix", "@T", ErrMalformedTag, `"field"`},
		{"missing comma", "@T(date [x])", ErrMalformedTag, `"field"`},
		{"missing brackets", "@T(date, x)", ErrMalformedTag, `"field"`},
		{"unsupported kind", "@T(bogus, [x])", ErrUnsupportedKind, "bogus"},
		{"unknown symbol", "@T(symbol, [-Infinity])", ErrUnknownSymbol, "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("field", tt.value)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestDecodePropagatesNativeErrors(t *testing.T) {
	_, err := Decode("d", "@T(date, [not a date])")
	var parseErr *time.ParseError
	assert.True(t, errors.As(err, &parseErr))

	_, err = Decode("r", "@T(regexp, [(unclosed])")
	var syntaxErr *syntax.Error
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []any{
		"@T(regexp, [x])",
		"@T",
		"plain",
		math.Inf(1),
		time.Date(2024, time.February, 29, 12, 34, 56, 0, time.UTC),
	}

	for _, value := range values {
		encoded, err := Encode("", value)
		assert.NoError(t, err)

		decoded, err := Decode("", encoded)
		assert.NoError(t, err)
		assert.Equal(t, value, decoded)
	}
}

func TestChain(t *testing.T) {
	upper := func(key string, value any) (any, error) {
		if s, ok := value.(string); ok {
			return s + "!", nil
		}

		return value, nil
	}

	hook := Chain(Encode, nil, upper)

	result, err := hook("k", "@T")
	assert.NoError(t, err)
	assert.Equal(t, any("@T(escape, [@T])!"), result)

	failing := Chain(Decode, upper)
	_, err = failing("k", "@T(bogus, [x])")
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(string(kind))
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	parsed, err := ParseKind(" RegExp ")
	assert.NoError(t, err)
	assert.Equal(t, KindRegExp, parsed)
}
