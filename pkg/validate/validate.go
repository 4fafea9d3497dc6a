// Package validate implements a small rule interpreter for loosely typed
// configuration objects such as decoded YAML or JSON documents.
//
// A Rules table lists fields in order; each field has an expected Type and a list
// of Constraints. ValidateObject checks fields in declaration order and stops at the
// first failure. The type check runs before the constraints of a field, and the
// constraints run in declaration order. ContainsAll is the only check that collects
// several problems before failing: it reports every missing token at once.
package validate

import (
	"reflect"
	"strconv"
	"strings"
)

// RequireKeys returns a new map with exactly keys taken from obj.
// It fails with ErrMissingKeys naming every required key if obj is not an object
// or lacks any of them.
func RequireKeys(obj any, keys ...string) (map[string]any, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, missingKeysError(keys)
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			return nil, missingKeysError(keys)
		}
		out[k] = v
	}
	return out, nil
}

// ValidateObject checks obj against rules and returns a normalized copy holding only
// the ruled fields. The returned error is an *Error.
func ValidateObject(obj map[string]any, rules Rules) (map[string]any, error) {
	out := make(map[string]any, len(rules))
	for _, field := range rules {
		v := obj[field.Name]
		if err := ValidateValue(field.Name, v, field.Rule); err != nil {
			return nil, err
		}
		out[field.Name] = v
	}
	return out, nil
}

// ValidateValue checks a single value against rule, reporting failures under name.
func ValidateValue(name string, v any, rule Rule) error {
	if !checkType(v, rule.Type) {
		return typeError(name, rule.Type)
	}
	for _, c := range rule.Constraints {
		if err := checkConstraint(name, v, c); err != nil {
			return err
		}
	}
	return nil
}

func checkConstraint(name string, v any, c Constraint) error {
	switch c.Kind {
	case KindRange:
		f, ok := AsFloat(v)
		if !ok || f < c.Min || f > c.Max {
			return constraintError(name, c.Kind)
		}
		return nil

	case KindIn:
		for _, candidate := range c.Values {
			if reflect.DeepEqual(v, candidate) {
				return nil
			}
		}
		return constraintError(name, c.Kind)

	case KindContains:
		return checkContains(name, v, c)

	case KindSize:
		s, ok := AsSlice(v)
		if !ok || len(s) != c.Size {
			return &Error{
				Field: name,
				Rule:  string(c.Kind),
				Msg:   name + " must have " + strconv.Itoa(c.Size) + " items",
			}
		}
		return nil

	case KindPolygon:
		return checkPolygonFeature(name, v)
	}
	return constraintError(name, c.Kind)
}

func checkContains(name string, v any, c Constraint) error {
	var has func(token string) bool
	switch val := v.(type) {
	case string:
		has = func(token string) bool { return strings.Contains(val, token) }
	default:
		items, ok := AsSlice(v)
		if !ok {
			return constraintError(name, c.Kind)
		}
		has = func(token string) bool {
			for _, item := range items {
				if s, ok := item.(string); ok && s == token {
					return true
				}
			}
			return false
		}
	}

	var missing []string
	for _, token := range c.Tokens {
		if !has(token) {
			missing = append(missing, token)
		}
	}
	if len(missing) > 0 {
		return missingTokensError(name, missing)
	}
	return nil
}

func checkPolygonFeature(name string, v any) error {
	feature, ok := v.(map[string]any)
	if !ok || feature["type"] != "Feature" {
		return &Error{Field: name, Rule: string(KindPolygon), Msg: "geojson must have type(Feature) property"}
	}
	geometry, ok := feature["geometry"].(map[string]any)
	if !ok {
		return &Error{Field: name, Rule: string(KindPolygon), Msg: "geojson must have geometry property"}
	}
	if geometry["type"] != "Polygon" {
		return &Error{Field: name, Rule: string(KindPolygon), Msg: "geojson geometry must be Polygon"}
	}
	return nil
}
