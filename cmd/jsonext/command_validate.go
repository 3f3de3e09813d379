package main

import (
	"fmt"

	"github.com/shibukawa/jsonext"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Files []string `arg:"" help:"Files to validate" type:"path"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	var failed int

	for _, file := range cmd.Files {
		ctx.verbosef("Validating %s", file)

		if err := validateFile(ctx, file, config.ParseOptions()); err != nil {
			failed++

			if !ctx.Quiet {
				failure.Fprintf(ctx.stdout(), "✗ %s: %v\n", file, err)
			}

			continue
		}

		if !ctx.Quiet {
			success.Fprintf(ctx.stdout(), "✓ %s\n", file)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrValidationFailed, failed, len(cmd.Files))
	}

	if !ctx.Quiet {
		success.Fprintf(ctx.stdout(), "Validation completed successfully\n")
	}

	return nil
}

func validateFile(ctx *Context, file string, options jsonext.ParseOptions) error {
	input, _, err := readInput(ctx, file)
	if err != nil {
		return err
	}

	_, err = jsonext.ParseWithOptions(input, nil, options)

	return err
}
