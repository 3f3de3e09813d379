package main

import "errors"

// Sentinel errors for command operations
var (
	ErrFileHasComments   = errors.New("file has comments")
	ErrFileNotFormatted  = errors.New("file is not formatted")
	ErrValidationFailed  = errors.New("validation failed")
	ErrInputFileNotExist = errors.New("input file does not exist")
	ErrConflictingOutput = errors.New("--write and --output are mutually exclusive")
)
