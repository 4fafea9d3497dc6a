package validate

import (
	"encoding/json"
	"math"
	"reflect"
)

// AsFloat converts any Go numeric value (including json.Number) to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt converts a whole, finite number to int.
func AsInt(v any) (int, bool) {
	f, ok := AsFloat(v)
	if !ok || !isWhole(f) {
		return 0, false
	}
	return int(f), true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isWhole(f float64) bool {
	return isFinite(f) && f == math.Trunc(f)
}

// AsSlice exposes any slice value as []any.
func AsSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func checkType(v any, t Type) bool {
	switch t {
	case TypeAny:
		return true
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		f, ok := AsFloat(v)
		return ok && isWhole(f)
	case TypeFloat:
		f, ok := AsFloat(v)
		return ok && isFinite(f)
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	case TypeArray:
		_, ok := AsSlice(v)
		return ok
	}
	return false
}
