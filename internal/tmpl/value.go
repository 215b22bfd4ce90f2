package tmpl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Context is the flat, per-call mapping templates are resolved against.
// Values are cty values so only a closed set of kinds (string, number, bool,
// plus collections of those) can cross the resolution boundary; arbitrary
// host types are converted at the edge by FromGo and never leak further in.
type Context map[string]cty.Value

// pathMarker marks string values that were coerced from configured
// filesystem paths, distinguishing them from plain strings.
type pathMarker struct{}

// PathMark is the cty mark applied to path-typed context values.
var PathMark = pathMarker{}

// PathVal wraps a filesystem path as a marked context value.
func PathVal(p string) cty.Value {
	return cty.StringVal(p).Mark(PathMark)
}

// IsPath reports whether a context value carries the path mark.
func IsPath(v cty.Value) bool {
	return v.HasMark(PathMark)
}

// FromGo adapts an externally supplied value (a manifest row field, an
// override) into a context value. Callable and otherwise inconvertible
// values are rejected with an error.
func FromGo(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return val, nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case fmt.Stringer:
		return cty.StringVal(val.String()), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, e := range val {
			converted, err := FromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = converted
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for k, e := range val {
			converted, err := FromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = converted
		}
		return cty.ObjectVal(attrs), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported context value of type %T: %w", v, err)
	}
	converted, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported context value of type %T: %w", v, err)
	}
	return converted, nil
}

// ValueString renders a context value the way it should appear inside a
// resolved template: strings and paths verbatim, numbers without a trailing
// exponent or spurious decimals, booleans as true/false. Collection values
// fall back to their compact JSON form.
func ValueString(v cty.Value) string {
	v, _ = v.Unmark()

	if v.IsNull() || !v.IsKnown() {
		return ""
	}

	switch {
	case v.Type() == cty.String:
		return v.AsString()
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case v.Type() == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}

	if b, err := ctyjson.Marshal(v, v.Type()); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
