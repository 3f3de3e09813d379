package transform

import (
	"math"
	"regexp"
	"time"
)

// Encode rewrites a value JSON cannot carry into its tag. Other values are
// returned unchanged. Negative infinity is left alone and ends up as null.
func Encode(key string, value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return encodeFloat(v, value), nil
	case float32:
		return encodeFloat(float64(v), value), nil
	case time.Time:
		return render(KindDate, v.UTC().Format(DateLayout)), nil
	case *time.Time:
		if v != nil {
			return render(KindDate, v.UTC().Format(DateLayout)), nil
		}
	case *regexp.Regexp:
		if v != nil {
			return render(KindRegExp, v.String()), nil
		}
	case string:
		if IsTag(v) {
			return render(KindEscape, v), nil
		}
	}

	return value, nil
}

func encodeFloat(f float64, original any) any {
	switch {
	case math.IsNaN(f):
		return render(KindSymbol, SymbolNaN)
	case math.IsInf(f, 1):
		return render(KindSymbol, SymbolInfinity)
	default:
		return original
	}
}
