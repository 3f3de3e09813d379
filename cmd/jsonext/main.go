package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/jsonext"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var (
	progress = color.New(color.FgBlue)
	success  = color.New(color.FgGreen)
	failure  = color.New(color.FgRed)
	warning  = color.New(color.FgYellow)
)

func (c *Context) stdin() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}

	return c.Stdin
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}

	return c.Stdout
}

func (c *Context) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}

	return c.Stderr
}

// verbosef reports progress on stderr when --verbose is set
func (c *Context) verbosef(format string, args ...any) {
	if c.Verbose && !c.Quiet {
		progress.Fprintf(c.stderr(), format+"\n", args...)
	}
}

// warnf reports a problem on stderr unless --quiet is set
func (c *Context) warnf(format string, args ...any) {
	if !c.Quiet {
		warning.Fprintf(c.stderr(), format+"\n", args...)
	}
}

// loadConfig loads the configuration named by --config
func (c *Context) loadConfig() (*jsonext.Config, error) {
	config, err := jsonext.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c.verbosef("Loaded configuration from %s", c.Config)

	return config, nil
}

var CLI struct {
	Config   string      `help:"Configuration file path" default:"jsonext.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Strip    StripCmd    `cmd:"" help:"Remove comments, leaving strict JSON"`
	Format   FormatCmd   `cmd:"" help:"Parse and re-stringify JSONext files"`
	Decode   DecodeCmd   `cmd:"" help:"Print the decoded document"`
	Comments CommentsCmd `cmd:"" help:"List comments with their positions"`
	Tag      TagCmd      `cmd:"" help:"Print a tagged value"`
	Query    QueryCmd    `cmd:"" help:"Evaluate a CEL expression against a document"`
	Validate ValidateCmd `cmd:"" help:"Validate JSONext files"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.stdout(), "jsonext %s\n", version)
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jsonext"),
		kong.Description("Read and write JSON with comments and tagged values."),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
