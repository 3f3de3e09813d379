package main

import (
	"fmt"

	"github.com/shibukawa/jsonext/tokenizer"
)

// CommentsCmd represents the comments command
type CommentsCmd struct {
	Input string `arg:"" optional:"" help:"Input file (default: stdin)"`
}

// Run executes the comments command
func (cmd *CommentsCmd) Run(ctx *Context) error {
	input, name, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	comments, err := tokenizer.Comments(input)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", name, err)
	}

	ctx.verbosef("Found %d comments in %s", len(comments), name)

	for _, comment := range comments {
		if _, err := fmt.Fprintf(ctx.stdout(), "%s:%s\t%s\n", name, comment.Position, comment.Value); err != nil {
			return err
		}
	}

	return nil
}
