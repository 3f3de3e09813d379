package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/jsonext"
	"github.com/shibukawa/jsonext/query"
)

// DecodeCmd represents the decode command
type DecodeCmd struct {
	Input   string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Format  string `short:"f" help:"Output format: text, json or yaml (default: from config)"`
	NoColor bool   `help:"Disable colored text output"`
}

// Run executes the decode command
func (cmd *DecodeCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(config, cmd.Format, cmd.NoColor)
	if err != nil {
		return err
	}

	input, name, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	value, err := jsonext.ParseWithOptions(input, nil, config.ParseOptions())
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return formatter.Format(value, ctx.stdout())
}

// newFormatter builds a formatter from the configuration and command flags
func newFormatter(config *jsonext.Config, format string, noColor bool) (*query.Formatter, error) {
	if format == "" {
		format = config.Output.Format
	}

	if !query.IsValidOutputFormat(format) {
		return nil, fmt.Errorf("%w: %s", query.ErrInvalidOutputFormat, format)
	}

	formatter := query.NewFormatter(query.OutputFormat(strings.ToLower(format)))
	formatter.Indent = config.Indent
	formatter.Color = config.ColorEnabled() && !noColor

	return formatter, nil
}
