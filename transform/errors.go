package transform

import "errors"

// Sentinel errors
var (
	// ErrMalformedTag is returned when a string carries the tag prefix but no well-formed (...) body.
	ErrMalformedTag = errors.New("malformed transformation tag")
	// ErrUnsupportedKind is returned for a kind outside date, regexp, symbol and escape.
	ErrUnsupportedKind = errors.New("unsupported transformation kind")
	// ErrUnknownSymbol is returned when a symbol payload is neither NaN nor Infinity.
	ErrUnknownSymbol = errors.New("unrecognized symbol specifier")
)
