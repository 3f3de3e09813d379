package query

import "errors"

// Error definitions
var (
	ErrCompile             = errors.New("CEL compilation error")
	ErrEvaluation          = errors.New("CEL evaluation error")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
