// Package area turns the supported area descriptions (bounding box, GeoJSON polygon
// feature, WKT polygon) into one canonical GeoJSON Feature with a Polygon geometry.
// Downstream code only ever sees the Feature and never branches on the input kind.
package area

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/glorpus-work/tilegrab/pkg/validate"
)

// Kind selects the representation of an area payload.
type Kind string

// Supported area kinds.
const (
	KindBBox    Kind = "bbox"
	KindGeoJSON Kind = "geojson"
	KindWKT     Kind = "wkt"
)

// Kinds lists the accepted kinds in the order they are documented.
var Kinds = []Kind{KindBBox, KindGeoJSON, KindWKT}

// ErrInvalidAreaKind is returned for a kind outside Kinds.
var ErrInvalidAreaKind = fmt.Errorf("%w: area type is not valid", validate.ErrValidation)

// Definition is an unresolved area: a kind discriminator plus its raw payload.
type Definition struct {
	Kind Kind
	Data any
}

var definitionRules = validate.Rules{
	{Name: "type", Rule: validate.Rule{Type: validate.TypeString}},
	{Name: "data", Rule: validate.Rule{Type: validate.TypeAny}},
}

var (
	bboxRules = definitionRules.With("data", validate.Rule{
		Type:        validate.TypeArray,
		Constraints: []validate.Constraint{validate.Size(4)},
	})
	geojsonRules = definitionRules.With("data", validate.Rule{
		Type:        validate.TypeObject,
		Constraints: []validate.Constraint{validate.PolygonFeature()},
	})
	wktRules = definitionRules.With("data", validate.Rule{
		Type:        validate.TypeString,
		Constraints: []validate.Constraint{validate.ContainsAll("POLYGON", "(", ",", ")")},
	})
)

// Parse extracts the type and data keys of a decoded area object.
func Parse(raw any) (Definition, error) {
	obj, err := validate.RequireKeys(raw, "type", "data")
	if err != nil {
		return Definition{}, fmt.Errorf("area: %w", err)
	}
	checked, err := validate.ValidateObject(obj, definitionRules)
	if err != nil {
		return Definition{}, fmt.Errorf("area: %w", err)
	}
	return Definition{Kind: Kind(checked["type"].(string)), Data: checked["data"]}, nil
}

// Resolve parses raw and resolves it to a polygon Feature.
func Resolve(raw any) (*geojson.Feature, error) {
	def, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return def.Resolve()
}

// Resolve validates the payload for d.Kind and converts it to a polygon Feature.
func (d Definition) Resolve() (*geojson.Feature, error) {
	obj := map[string]any{"type": string(d.Kind), "data": d.Data}

	switch d.Kind {
	case KindBBox:
		if _, err := validate.ValidateObject(obj, bboxRules); err != nil {
			return nil, fmt.Errorf("area: %w", err)
		}
		return fromBBox(d.Data)
	case KindGeoJSON:
		if _, err := validate.ValidateObject(obj, geojsonRules); err != nil {
			return nil, fmt.Errorf("area: %w", err)
		}
		return fromGeoJSON(d.Data)
	case KindWKT:
		if _, err := validate.ValidateObject(obj, wktRules); err != nil {
			return nil, fmt.Errorf("area: %w", err)
		}
		return fromWKT(d.Data.(string))
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidAreaKind, d.Kind, Kinds)
	}
}

// fromBBox expects [minX, minY, maxX, maxY].
func fromBBox(data any) (*geojson.Feature, error) {
	values, _ := validate.AsSlice(data)
	var coords [4]float64
	for i, v := range values {
		if err := validate.ValidateValue(fmt.Sprintf("data[%d]", i), v, validate.Rule{Type: validate.TypeFloat}); err != nil {
			return nil, fmt.Errorf("area: %w", err)
		}
		coords[i], _ = validate.AsFloat(v)
	}
	if coords[0] >= coords[2] || coords[1] >= coords[3] {
		return nil, fmt.Errorf("area: %w", &validate.Error{
			Field: "data",
			Rule:  "bbox",
			Msg:   fmt.Sprintf("bbox %v must satisfy minX < maxX and minY < maxY", coords),
		})
	}
	bound := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}
	return geojson.NewFeature(bound.ToPolygon()), nil
}

// GeoJSON payloads pass through unchanged apart from decoding into orb types.
func fromGeoJSON(data any) (*geojson.Feature, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("area: encode geojson: %w", err)
	}
	feature, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: area: decode geojson: %w", validate.ErrValidation, err)
	}
	if _, ok := feature.Geometry.(orb.Polygon); !ok {
		return nil, fmt.Errorf("%w: area: geojson geometry must be Polygon", validate.ErrValidation)
	}
	if feature.Properties == nil {
		feature.Properties = geojson.Properties{}
	}
	return feature, nil
}

func fromWKT(data string) (*geojson.Feature, error) {
	geometry, err := wkt.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: area: parse wkt: %w", validate.ErrValidation, err)
	}
	polygon, ok := geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: area: wkt must describe a POLYGON, got %s", validate.ErrValidation, geometry.GeoJSONType())
	}
	return geojson.NewFeature(polygon), nil
}
