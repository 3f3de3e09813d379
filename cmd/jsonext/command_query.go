package main

import (
	"fmt"

	"github.com/shibukawa/jsonext"
	"github.com/shibukawa/jsonext/query"
)

// QueryCmd represents the query command
type QueryCmd struct {
	Expression string `arg:"" help:"CEL expression; the document is bound to doc"`
	Input      string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Format     string `short:"f" help:"Output format: text, json or yaml" default:"json"`
	NoColor    bool   `help:"Disable colored text output"`
}

// Run executes the query command
func (cmd *QueryCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(config, cmd.Format, cmd.NoColor)
	if err != nil {
		return err
	}

	// Compile before reading stdin
	q, err := query.Compile(cmd.Expression)
	if err != nil {
		return err
	}

	input, name, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	doc, err := jsonext.ParseWithOptions(input, nil, config.ParseOptions())
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	ctx.verbosef("Evaluating %s against %s", q.Expression, name)

	result, err := q.Evaluate(doc)
	if err != nil {
		return err
	}

	return formatter.Format(result, ctx.stdout())
}
