// Package tilesource validates tile-source settings and expands tile URL templates.
package tilesource

import (
	"fmt"
	"strconv"

	"github.com/glorpus-work/tilegrab/pkg/validate"
)

// Scheme is the kind of tile service.
type Scheme string

// Supported schemes.
const (
	SchemeURL Scheme = "url"
	SchemeWMS Scheme = "wms"
	SchemeWFS Scheme = "wfs"
)

// Zoom bounds accepted for minZoom and maxZoom.
const (
	MinZoomLevel = 0
	MaxZoomLevel = 22
)

// Formats lists the accepted image formats, which double as file extensions.
var Formats = []string{"png", "gif", "pbf", "jpg", "jpeg"}

// RequiredKeys are the keys a tile object must carry.
var RequiredKeys = []string{"type", "url", "subdomains", "minZoom", "maxZoom", "format"}

// Rules is the validation table for tile objects.
var Rules = validate.Rules{
	{Name: "type", Rule: validate.Rule{
		Type:        validate.TypeString,
		Constraints: []validate.Constraint{validate.In(string(SchemeURL), string(SchemeWMS), string(SchemeWFS))},
	}},
	{Name: "url", Rule: validate.Rule{
		Type:        validate.TypeString,
		Constraints: []validate.Constraint{validate.ContainsAll("{x}", "{y}", "{z}", "http")},
	}},
	{Name: "subdomains", Rule: validate.Rule{Type: validate.TypeArray}},
	{Name: "minZoom", Rule: validate.Rule{
		Type:        validate.TypeInteger,
		Constraints: []validate.Constraint{validate.Range(MinZoomLevel, MaxZoomLevel)},
	}},
	{Name: "maxZoom", Rule: validate.Rule{
		Type:        validate.TypeInteger,
		Constraints: []validate.Constraint{validate.Range(MinZoomLevel, MaxZoomLevel)},
	}},
	{Name: "format", Rule: validate.Rule{
		Type:        validate.TypeString,
		Constraints: []validate.Constraint{validate.In(formatValues()...)},
	}},
}

func formatValues() []any {
	out := make([]any, len(Formats))
	for i, f := range Formats {
		out[i] = f
	}
	return out
}

// Config is a validated tile source.
// MinZoom > MaxZoom is accepted and describes an empty zoom range.
type Config struct {
	Scheme     Scheme
	URL        string
	Subdomains []string
	MinZoom    int
	MaxZoom    int
	Format     string
}

// Parse validates a decoded tile object and converts it to a Config.
func Parse(raw any) (Config, error) {
	obj, err := validate.RequireKeys(raw, RequiredKeys...)
	if err != nil {
		return Config{}, fmt.Errorf("tile: %w", err)
	}
	checked, err := validate.ValidateObject(obj, Rules)
	if err != nil {
		return Config{}, fmt.Errorf("tile: %w", err)
	}

	subdomains, err := subdomainPool(checked["subdomains"])
	if err != nil {
		return Config{}, fmt.Errorf("tile: %w", err)
	}
	minZoom, _ := validate.AsInt(checked["minZoom"])
	maxZoom, _ := validate.AsInt(checked["maxZoom"])

	return Config{
		Scheme:     Scheme(checked["type"].(string)),
		URL:        checked["url"].(string),
		Subdomains: subdomains,
		MinZoom:    minZoom,
		MaxZoom:    maxZoom,
		Format:     checked["format"].(string),
	}, nil
}

// subdomainPool requires a non-empty list of strings so that Expand always has a candidate.
func subdomainPool(v any) ([]string, error) {
	var items []any
	switch s := v.(type) {
	case []any:
		items = s
	case []string:
		return append([]string(nil), s...), nonEmpty(len(s))
	}
	if err := nonEmpty(len(items)); err != nil {
		return nil, err
	}
	pool := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &validate.Error{
				Field: "subdomains",
				Rule:  "type",
				Msg:   "subdomains[" + strconv.Itoa(i) + "] must be a string",
			}
		}
		pool = append(pool, s)
	}
	return pool, nil
}

func nonEmpty(n int) error {
	if n == 0 {
		return &validate.Error{Field: "subdomains", Rule: "size", Msg: "subdomains must not be empty"}
	}
	return nil
}

// RowFile is the file name of a tile row: the row number plus the format extension.
func (c Config) RowFile(row int) string {
	return strconv.Itoa(row) + "." + c.Format
}

// ZoomRangeEmpty reports whether the configured range selects no zoom level.
func (c Config) ZoomRangeEmpty() bool {
	return c.MinZoom > c.MaxZoom
}
