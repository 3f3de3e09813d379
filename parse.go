package jsonext

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/jsonext/transform"
)

// Numbers selects the Go type parsed numbers take
type Numbers int

const (
	// NumbersFloat decodes numbers as float64
	NumbersFloat Numbers = iota
	// NumbersDecimal decodes numbers as decimal.Decimal, keeping every digit
	NumbersDecimal
)

// ParseOptions tunes Parse
type ParseOptions struct {
	Numbers Numbers
}

// Parse parses JSONext text into nil, bool, float64, string, []any and
// map[string]any values, reviving tags into time.Time, *regexp.Regexp, NaN,
// +Inf and escaped strings. A non-nil reviver then sees every value.
func Parse(text string, reviver Reviver) (any, error) {
	return ParseWithOptions(text, reviver, ParseOptions{})
}

// ParseWithOptions is Parse with explicit options
func ParseWithOptions(text string, reviver Reviver, options ParseOptions) (any, error) {
	strict, err := strictText(text)
	if err != nil {
		return nil, err
	}

	var tree any
	if err := delegateFor(options.Numbers).UnmarshalFromString(strict, &tree); err != nil {
		return nil, err
	}

	d := &decoder{
		hook:    transform.Chain(transform.Decode, transform.Hook(reviver)),
		numbers: options.Numbers,
	}

	result, err := d.internalize("", tree)
	if err != nil {
		return nil, err
	}

	if isUndefined(result) {
		return nil, nil
	}

	return result, nil
}

// Unmarshal strips comments from data and decodes it into v.
// Tags stay plain strings; use Parse to revive them.
func Unmarshal(data []byte, v any) error {
	strict, err := strictText(string(data))
	if err != nil {
		return err
	}

	return delegate.UnmarshalFromString(strict, v)
}

// strictText strips comments and rejects documents left empty, which the
// delegate would otherwise accept as null.
func strictText(text string) (string, error) {
	strict, err := Process(text)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(strict) == "" {
		return "", ErrEmptyDocument
	}

	return strict, nil
}

// decoder walks a parsed tree bottom-up the way JSON.parse applies a reviver
type decoder struct {
	hook    transform.Hook
	numbers Numbers
}

func (d *decoder) internalize(key string, value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			child, err := d.internalize(k, v[k])
			if err != nil {
				return nil, err
			}

			if isUndefined(child) {
				delete(v, k)
			} else {
				v[k] = child
			}
		}
	case []any:
		for i, element := range v {
			child, err := d.internalize(strconv.Itoa(i), element)
			if err != nil {
				return nil, err
			}

			if isUndefined(child) {
				v[i] = nil
			} else {
				v[i] = child
			}
		}
	case json.Number:
		if d.numbers == NumbersDecimal {
			number, err := decimal.NewFromString(v.String())
			if err != nil {
				return nil, err
			}

			value = number
		}
	}

	return d.hook(key, value)
}
