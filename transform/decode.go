package transform

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var envelope = regexp.MustCompile(`(?s)^\(.*\)$`)

// dateLayouts are tried after DateLayout when decoding a date payload
var dateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339Nano,
	time.DateOnly,
}

// Decode turns a tag string back into the value it encodes. Non-strings and
// strings without the tag prefix are returned unchanged.
func Decode(key string, value any) (any, error) {
	s, ok := value.(string)
	if !ok || !IsTag(s) {
		return value, nil
	}

	kind, payload, err := split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at key %q", err, s, key)
	}

	switch Kind(kind) {
	case KindDate:
		t, err := parseDate(payload)
		if err != nil {
			return nil, err
		}

		return t, nil
	case KindRegExp:
		re, err := regexp.Compile(payload)
		if err != nil {
			return nil, err
		}

		return re, nil
	case KindEscape:
		return payload, nil
	case KindSymbol:
		switch strings.ToLower(payload) {
		case "nan":
			return math.NaN(), nil
		case "infinity":
			return math.Inf(1), nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, payload)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// split extracts the lower-cased kind and the literal payload of a tag.
// The payload runs from the first '[' after the comma to the last ']'.
func split(tag string) (kind, payload string, err error) {
	body := tag[len(Prefix):]
	if !envelope.MatchString(body) {
		return "", "", ErrMalformedTag
	}

	inner := body[1 : len(body)-1]

	comma := strings.IndexByte(inner, ',')
	if comma < 0 {
		return "", "", ErrMalformedTag
	}

	rest := inner[comma+1:]
	open := strings.IndexByte(rest, '[')
	closing := strings.LastIndexByte(rest, ']')

	if open < 0 || closing < open {
		return "", "", ErrMalformedTag
	}

	return strings.ToLower(strings.TrimSpace(inner[:comma])), rest[open+1 : closing], nil
}

func parseDate(payload string) (time.Time, error) {
	t, err := time.Parse(DateLayout, payload)
	if err == nil {
		return t, nil
	}

	for _, layout := range dateLayouts {
		if t, retryErr := time.Parse(layout, payload); retryErr == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, err
}
