package main

import (
	"fmt"

	"github.com/shibukawa/jsonext"
)

// FormatCmd represents the format command
type FormatCmd struct {
	RewriteFlags `embed:""`
	Indent       int `help:"Indentation width in spaces, 0 for compact output (default: from config)" default:"-1"`
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	input, name, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	ctx.verbosef("Formatting %s", name)

	value, err := jsonext.ParseWithOptions(input, nil, config.ParseOptions())
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	indent := config.Indent
	if cmd.Indent >= 0 {
		indent = jsonext.Indent(cmd.Indent)
	}

	formatted, err := jsonext.Stringify(value, nil, indent)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", name, err)
	}

	formatted += "\n"

	if cmd.Check {
		if formatted != input {
			ctx.warnf("%s is not formatted", name)
			return fmt.Errorf("%w: %s", ErrFileNotFormatted, name)
		}

		return nil
	}

	return cmd.emit(ctx, name, input, formatted)
}
