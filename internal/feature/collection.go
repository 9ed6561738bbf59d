// Package feature holds the in-memory geographic feature model shared by the
// acquisition, derivation, and rendering stages: features with attribute
// tables, ordered collections, and the derivations (centroids, filtering,
// extent) the map pipeline needs.
package feature

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Feature is a single geographic feature: one geometry plus its attribute table.
type Feature struct {
	Geom  geom.T
	Attrs map[string]any
}

// StringAttr returns the named attribute rendered as a string.
// Missing attributes and nil values return "".
func (f Feature) StringAttr(name string) string {
	v, ok := f.Attrs[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FloatAttr returns the named attribute as a float64, or 0 if absent or
// not numeric.
func (f Feature) FloatAttr(name string) float64 {
	v, ok := f.Attrs[name]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Collection is an ordered sequence of features sharing one spatial
// reference. Order is preserved by every operation on it.
type Collection struct {
	SRID     int
	Features []Feature
}

// NewCollection returns an empty collection in the given spatial reference.
func NewCollection(srid int) *Collection {
	return &Collection{SRID: srid}
}

// Len returns the number of features in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Features)
}

// Append adds a feature to the end of the collection.
func (c *Collection) Append(f Feature) {
	c.Features = append(c.Features, f)
}

// FilterByAttr returns the order-preserving subsequence of features whose
// named attribute equals one of the allowed values. Features are shared, not
// copied. Filtering an already-filtered collection by the same values yields
// an equal collection.
func (c *Collection) FilterByAttr(field string, allowed []string) *Collection {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}

	out := NewCollection(c.SRID)
	for _, f := range c.Features {
		if _, ok := set[f.StringAttr(field)]; ok {
			out.Append(f)
		}
	}
	return out
}
