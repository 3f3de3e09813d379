package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

const stdinName = "<stdin>"

// readInput reads the named file, or stdin when name is empty
func readInput(ctx *Context, name string) (string, string, error) {
	if name == "" {
		data, err := io.ReadAll(ctx.stdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read input: %w", err)
		}

		return string(data), stdinName, nil
	}

	if !fileExists(name) {
		return "", "", fmt.Errorf("%w: %s", ErrInputFileNotExist, name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return string(data), name, nil
}

// RewriteFlags are the output flags shared by strip and format
type RewriteFlags struct {
	Input  string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
	Check  bool   `short:"c" help:"Check only; fail when the file would change"`
	Diff   bool   `short:"d" help:"Show a unified diff instead of the result"`
}

// emit writes result according to the output flags
func (o *RewriteFlags) emit(ctx *Context, name, original, result string) error {
	if o.Write && o.Output != "" {
		return ErrConflictingOutput
	}

	if o.Diff {
		_, err := io.WriteString(ctx.stdout(), unifiedDiff(name, original, result))
		return err
	}

	switch {
	case o.Write && name != stdinName:
		return replaceFile(name, result)
	case o.Output != "":
		if err := os.WriteFile(o.Output, []byte(result), 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", o.Output, err)
		}

		return nil
	default:
		_, err := io.WriteString(ctx.stdout(), result)
		return err
	}
}

// replaceFile writes content next to filename and renames it into place
func replaceFile(filename, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(filename), ".jsonext-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = tempFile.WriteString(content)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := os.Rename(tempFile.Name(), filename); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	return nil
}

// unifiedDiff renders the changes between original and result
func unifiedDiff(name, original, result string) string {
	if original == result {
		return ""
	}

	if !strings.HasSuffix(original, "\n") {
		original += "\n"
	}

	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	edits := myers.ComputeEdits(span.URIFromPath(name), original, result)

	return fmt.Sprint(gotextdiff.ToUnified(name+" (original)", name+" (result)", original, edits))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
