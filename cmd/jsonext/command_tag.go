package main

import (
	"fmt"

	"github.com/shibukawa/jsonext"
)

// TagCmd represents the tag command
type TagCmd struct {
	Kind       string `arg:"" help:"Tag kind: date, regexp, symbol or escape"`
	Expression string `arg:"" help:"Tag payload"`
}

// Run executes the tag command
func (cmd *TagCmd) Run(ctx *Context) error {
	tag, err := jsonext.DefineTransformation(cmd.Kind, cmd.Expression)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.stdout(), tag)

	return err
}
