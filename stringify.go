package jsonext

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/jsonext/transform"
)

// isoLayout is the plain JSON form of a date when tag encoding is skipped
const isoLayout = "2006-01-02T15:04:05.000Z"

// Stringify converts value to JSON text.
//
// With a nil replacer dates, regular expressions, NaN, +Infinity and strings
// starting with "@T" become tags. A ReplacerFunc runs after tag encoding and
// has the last word. An Allowlist bypasses tag encoding and keeps only the
// listed object members. A non-empty space indents the output with up to ten
// characters of it per level.
//
// Object members are written in sorted key order. When the root value is
// replaced by Undefined the result is empty.
func Stringify(value any, replacer Replacer, space string) (string, error) {
	e := &encoder{}

	switch r := replacer.(type) {
	case nil:
		e.hook = transform.Encode
	case ReplacerFunc:
		e.hook = transform.Chain(transform.Encode, transform.Hook(r))
	case Allowlist:
		e.allowed = r.set()
	}

	tree, err := e.property("", value)
	if err != nil {
		return "", err
	}

	if isUndefined(tree) {
		return "", nil
	}

	data, err := delegate.Marshal(tree)
	if err != nil {
		return "", err
	}

	space = capIndent(space)
	if space == "" {
		return string(data), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", space); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// encoder walks a Go value top-down the way JSON.stringify walks objects,
// producing a tree of JSON-native values for the delegate to print.
type encoder struct {
	hook    transform.Hook
	allowed map[string]bool
	// pointers, maps and slices on the current path
	visiting map[visit]bool
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// enter marks a reference value as being walked. Meeting it again before
// leave is called means the value contains itself.
func (e *encoder) enter(rv reflect.Value) (leave func(), err error) {
	v := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		v.len = rv.Len()
	}

	if e.visiting[v] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicValue, rv.Type())
	}

	if e.visiting == nil {
		e.visiting = make(map[visit]bool)
	}

	e.visiting[v] = true

	return func() { delete(e.visiting, v) }, nil
}

// property visits one member: own JSON form first, then the hook, then children
func (e *encoder) property(key string, value any) (any, error) {
	var leaves []func()
	defer func() {
		for i := len(leaves) - 1; i >= 0; i-- {
			leaves[i]()
		}
	}()

	// Follow pointers so the hook judges what they point at
	for {
		var err error

		value, err = marshalerForm(value)
		if err != nil {
			return nil, err
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || encodedByPointer(value) {
			break
		}

		leave, err := e.enter(rv)
		if err != nil {
			return nil, err
		}

		leaves = append(leaves, leave)
		value = rv.Elem().Interface()
	}

	value = baseScalar(value)

	var err error

	if e.hook != nil {
		value, err = e.hook(key, value)
		if err != nil {
			return nil, err
		}
	}

	return e.normalize(value)
}

func (e *encoder) normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string, json.RawMessage, json.Number, undefined:
		return v, nil
	case decimal.Decimal:
		return json.Number(v.String()), nil
	case float64:
		return finite(v, value), nil
	case float32:
		return finite(float64(v), value), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, nil
	case time.Time:
		return v.UTC().Format(isoLayout), nil
	case *regexp.Regexp:
		if v == nil {
			return nil, nil
		}

		return map[string]any{}, nil
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}

		if rv.Kind() == reflect.Pointer {
			leave, err := e.enter(rv)
			if err != nil {
				return nil, err
			}
			defer leave()
		}

		return e.normalize(rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float(), rv.Float()), nil
	case reflect.Map:
		return e.object(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}

		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), nil
		}

		if rv.Len() > 0 {
			leave, err := e.enter(rv)
			if err != nil {
				return nil, err
			}
			defer leave()
		}

		return e.array(rv)
	case reflect.Array:
		return e.array(rv)
	case reflect.Struct:
		return e.structure(rv)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

func (e *encoder) object(rv reflect.Value) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}

	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMapKey, rv.Type().Key())
	}

	leave, err := e.enter(rv)
	if err != nil {
		return nil, err
	}
	defer leave()

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	result := make(map[string]any, len(keys))

	for _, key := range keys {
		name := key.String()
		if e.allowed != nil && !e.allowed[name] {
			continue
		}

		child, err := e.property(name, rv.MapIndex(key).Interface())
		if err != nil {
			return nil, err
		}

		if !isUndefined(child) {
			result[name] = child
		}
	}

	return result, nil
}

func (e *encoder) array(rv reflect.Value) (any, error) {
	result := make([]any, rv.Len())

	for i := range result {
		child, err := e.property(strconv.Itoa(i), rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}

		if !isUndefined(child) {
			result[i] = child
		}
	}

	return result, nil
}

func (e *encoder) structure(rv reflect.Value) (any, error) {
	result := make(map[string]any)

	for _, f := range structFields(rv.Type()) {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// promoted through a nil embedded pointer
			continue
		}

		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}

		if e.allowed != nil && !e.allowed[f.name] {
			continue
		}

		child, err := e.property(f.name, fv.Interface())
		if err != nil {
			return nil, err
		}

		if !isUndefined(child) {
			result[f.name] = child
		}
	}

	return result, nil
}

// marshalerForm replaces a json.Marshaler with its raw output, like toJSON,
// and an encoding.TextMarshaler with its text. Kinds the tag encoder
// understands keep their Go form.
func marshalerForm(value any) (any, error) {
	switch v := value.(type) {
	case nil, time.Time, *time.Time, *regexp.Regexp, decimal.Decimal, json.RawMessage, json.Number:
		return value, nil
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}

		return *v, nil
	}

	switch m := value.(type) {
	case json.Marshaler:
		if isNilPointer(value) {
			return nil, nil
		}

		raw, err := m.MarshalJSON()
		if err != nil {
			return nil, err
		}

		return json.RawMessage(raw), nil
	case encoding.TextMarshaler:
		if isNilPointer(value) {
			return nil, nil
		}

		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}

		return string(text), nil
	default:
		return value, nil
	}
}

// encodedByPointer reports pointer types the tag encoder takes as they are
func encodedByPointer(value any) bool {
	switch value.(type) {
	case *time.Time, *regexp.Regexp:
		return true
	default:
		return false
	}
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// baseScalar strips the name from string and float kinds so the tag encoder
// sees them, e.g. type Name string holding "@T...".
func baseScalar(value any) any {
	switch value.(type) {
	case nil, string, float64, float32, json.Number:
		return value
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Float64:
		return rv.Float()
	case reflect.Float32:
		return float32(rv.Float())
	default:
		return value
	}
}

// finite maps NaN and infinities to null, the way JSON prints them
func finite(f float64, original any) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return original
}

func isUndefined(value any) bool {
	_, ok := value.(undefined)
	return ok
}

type field struct {
	name      string
	index     []int
	omitEmpty bool
}

// structFields lists the JSON members of a struct type: exported fields
// under their json tag names, then fields promoted from embedded structs
// whose names are not already taken.
func structFields(t reflect.Type) []field {
	return collectFields(t, make(map[reflect.Type]bool))
}

// collectFields skips embedded types already open on the current path,
// so a struct embedding a pointer to itself terminates.
func collectFields(t reflect.Type, open map[reflect.Type]bool) []field {
	open[t] = true
	defer delete(open, t)

	var (
		fields   []field
		embedded [][]int
		seen     = make(map[string]bool)
	)

	for i := range t.NumField() {
		sf := t.Field(i)

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, options, _ := strings.Cut(tag, ",")

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if sf.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			if sf.IsExported() {
				embedded = append(embedded, sf.Index)
			}

			continue
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		seen[name] = true
		fields = append(fields, field{
			name:      name,
			index:     sf.Index,
			omitEmpty: hasOption(options, "omitempty"),
		})
	}

	for _, index := range embedded {
		sf := t.FieldByIndex(index)

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if open[ft] {
			continue
		}

		for _, promoted := range collectFields(ft, open) {
			if seen[promoted.name] {
				continue
			}

			seen[promoted.name] = true
			promoted.index = append(append([]int{}, index...), promoted.index...)
			fields = append(fields, promoted)
		}
	}

	return fields
}

func hasOption(options, option string) bool {
	for options != "" {
		var current string

		current, options, _ = strings.Cut(options, ",")
		if current == option {
			return true
		}
	}

	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}
