package validate

// Type is the expected value type of a field.
type Type string

// Recognized field types.
const (
	TypeAny     Type = "any"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Kind discriminates the Constraint variants.
type Kind string

// Constraint kinds.
const (
	KindRange    Kind = "range"
	KindIn       Kind = "in"
	KindContains Kind = "contains"
	KindSize     Kind = "size"
	KindPolygon  Kind = "polygon"
)

// Constraint is a closed tagged union; only the fields of its Kind are meaningful.
// Build values with Range, In, ContainsAll, Size and PolygonFeature.
type Constraint struct {
	Kind   Kind
	Min    float64
	Max    float64
	Values []any
	Tokens []string
	Size   int
}

// Range accepts numbers in [min, max].
func Range(min, max float64) Constraint {
	return Constraint{Kind: KindRange, Min: min, Max: max}
}

// In accepts values equal to one of values, without type coercion.
func In(values ...any) Constraint {
	return Constraint{Kind: KindIn, Values: values}
}

// ContainsAll accepts strings containing every token as a substring, or arrays
// containing every token as an element.
func ContainsAll(tokens ...string) Constraint {
	return Constraint{Kind: KindContains, Tokens: tokens}
}

// Size accepts arrays of exactly n elements.
func Size(n int) Constraint {
	return Constraint{Kind: KindSize, Size: n}
}

// PolygonFeature accepts GeoJSON objects of type Feature with a Polygon geometry.
func PolygonFeature() Constraint {
	return Constraint{Kind: KindPolygon}
}

// Rule is the expected type plus the ordered constraints of one field.
type Rule struct {
	Type        Type
	Constraints []Constraint
}

// Field binds a Rule to a key.
type Field struct {
	Name string
	Rule Rule
}

// Rules is an ordered rule table; fields are checked in declaration order.
type Rules []Field

// With returns a copy of rs where the rule for name is replaced (or appended).
func (rs Rules) With(name string, rule Rule) Rules {
	out := make(Rules, 0, len(rs)+1)
	replaced := false
	for _, f := range rs {
		if f.Name == name {
			out = append(out, Field{Name: name, Rule: rule})
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, Field{Name: name, Rule: rule})
	}
	return out
}
