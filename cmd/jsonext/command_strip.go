package main

import (
	"fmt"

	"github.com/shibukawa/jsonext"
)

// StripCmd represents the strip command
type StripCmd struct {
	RewriteFlags `embed:""`
}

// Run executes the strip command
func (cmd *StripCmd) Run(ctx *Context) error {
	input, name, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	ctx.verbosef("Stripping comments from %s", name)

	stripped, err := jsonext.Process(input)
	if err != nil {
		return fmt.Errorf("failed to strip %s: %w", name, err)
	}

	if cmd.Check {
		if stripped != input {
			ctx.warnf("%s has comments", name)
			return fmt.Errorf("%w: %s", ErrFileHasComments, name)
		}

		return nil
	}

	return cmd.emit(ctx, name, input, stripped)
}
