// Package query evaluates CEL expressions against decoded JSONext documents
// and prints the results.
package query

import (
	"fmt"
	"regexp"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/google/cel-go/ext"
	"github.com/shopspring/decimal"
)

// DocumentVariable is the name the document is bound to inside expressions
const DocumentVariable = "doc"

// Query is a compiled expression, safe for concurrent use
type Query struct {
	Expression string
	program    cel.Program
}

// Compile compiles expression. The document is visible as doc; dates are
// CEL timestamps, so doc.created.getFullYear() works.
func Compile(expression string) (*Query, error) {
	env, err := cel.NewEnv(
		cel.EagerlyValidateDeclarations(true),
		cel.Variable(DocumentVariable, cel.DynType),
		ext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Query{Expression: expression, program: program}, nil
}

// Evaluate runs the query against doc and returns a Go value: nil, bool,
// int64, uint64, float64, string, []byte, time.Time, time.Duration, []any or
// map[string]any.
func (q *Query) Evaluate(doc any) (any, error) {
	result, _, err := q.program.Eval(map[string]any{
		DocumentVariable: document(doc),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	return native(result), nil
}

// Evaluate compiles expression and runs it against doc
func Evaluate(doc any, expression string) (any, error) {
	q, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	return q.Evaluate(doc)
}

// document rewrites values CEL has no native form for
func document(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, child := range v {
			result[key] = document(child)
		}

		return result
	case []any:
		result := make([]any, len(v))
		for i, child := range v {
			result[i] = document(child)
		}

		return result
	case *regexp.Regexp:
		return v.String()
	case decimal.Decimal:
		return v.InexactFloat64()
	default:
		return value
	}
}

func native(value ref.Val) any {
	switch v := value.(type) {
	case types.Null:
		return nil
	case traits.Lister:
		size, _ := v.Size().(types.Int)

		result := make([]any, int(size))
		for i := range result {
			result[i] = native(v.Get(types.Int(i)))
		}

		return result
	case traits.Mapper:
		result := make(map[string]any)

		it := v.Iterator()
		for it.HasNext() == types.True {
			key := it.Next()
			result[fmt.Sprint(native(key))] = native(v.Get(key))
		}

		return result
	default:
		return value.Value()
	}
}
