package query

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/shibukawa/jsonext"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Formatter prints decoded documents and query results
type Formatter struct {
	OutputFormat OutputFormat
	Indent       string
	Color        bool
}

// NewFormatter creates a new formatter with two space indentation and color
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{
		OutputFormat: format,
		Indent:       jsonext.Indent(2),
		Color:        true,
	}
}

// Format writes value to output according to the specified format
func (f *Formatter) Format(value any, output io.Writer) error {
	switch f.OutputFormat {
	case FormatText:
		return f.formatAsText(value, output)
	case FormatJSON:
		return f.formatAsJSON(value, output)
	case FormatYAML:
		return f.formatAsYAML(value, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.OutputFormat)
	}
}

// formatAsText lists every leaf as "path: kind value"
func (f *Formatter) formatAsText(value any, output io.Writer) error {
	pathColor := color.New(color.FgCyan)
	kindColor := color.New(color.FgYellow)

	if !f.Color {
		pathColor.DisableColor()
		kindColor.DisableColor()
	}

	return walk("$", value, func(path, kind, text string) error {
		_, err := fmt.Fprintf(output, "%s: %s %s\n", pathColor.Sprint(path), kindColor.Sprint(kind), text)
		return err
	})
}

// formatAsJSON prints value as JSONext, keeping tags
func (f *Formatter) formatAsJSON(value any, output io.Writer) error {
	text, err := jsonext.Stringify(value, nil, f.Indent)
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}

	_, err = fmt.Fprintln(output, text)

	return err
}

// formatAsYAML prints value as YAML with native timestamps
func (f *Formatter) formatAsYAML(value any, output io.Writer) error {
	data, err := yaml.Marshal(plain(value))
	if err != nil {
		return fmt.Errorf("failed to marshal results to YAML: %w", err)
	}

	_, err = output.Write(data)

	return err
}

// walk visits leaves and empty containers in sorted key order
func walk(path string, value any, visit func(path, kind, text string) error) error {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			return visit(path, "object", "{}")
		}

		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			if err := walk(path+"."+key, v[key], visit); err != nil {
				return err
			}
		}

		return nil
	case []any:
		if len(v) == 0 {
			return visit(path, "array", "[]")
		}

		for i, child := range v {
			if err := walk(path+"["+strconv.Itoa(i)+"]", child, visit); err != nil {
				return err
			}
		}

		return nil
	}

	kind, text := describe(value)

	return visit(path, kind, text)
}

// describe names the kind of a leaf and renders it
func describe(value any) (kind, text string) {
	switch v := value.(type) {
	case nil:
		return "null", "null"
	case bool:
		return "bool", strconv.FormatBool(v)
	case string:
		return "string", strconv.Quote(v)
	case float64:
		switch {
		case math.IsNaN(v):
			return "symbol", "NaN"
		case math.IsInf(v, 1):
			return "symbol", "Infinity"
		case math.IsInf(v, -1):
			return "symbol", "-Infinity"
		}

		return "number", strconv.FormatFloat(v, 'g', -1, 64)
	case decimal.Decimal:
		return "number", v.String()
	case time.Time:
		return "date", v.UTC().Format(time.RFC3339Nano)
	case *regexp.Regexp:
		return "regexp", "/" + v.String() + "/"
	case int64, uint64, int:
		return "number", fmt.Sprint(v)
	case time.Duration:
		return "duration", v.String()
	default:
		return fmt.Sprintf("%T", v), fmt.Sprint(v)
	}
}

// plain maps values YAML cannot print as is
func plain(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, child := range v {
			result[key] = plain(child)
		}

		return result
	case []any:
		result := make([]any, len(v))
		for i, child := range v {
			result[i] = plain(child)
		}

		return result
	case *regexp.Regexp:
		return v.String()
	case decimal.Decimal:
		return v.String()
	case time.Duration:
		return v.String()
	default:
		return value
	}
}

// IsValidOutputFormat checks if the output format is valid
func IsValidOutputFormat(format string) bool {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}
