package jsonext

import (
	jsoniter "github.com/json-iterator/go"
)

// The strict JSON implementation every parse and print is delegated to.
// HTML characters are written verbatim and map keys are sorted so output is
// deterministic.
var (
	delegate = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	numberDelegate = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
)

func delegateFor(numbers Numbers) jsoniter.API {
	if numbers == NumbersDecimal {
		return numberDelegate
	}

	return delegate
}
