package label

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Offset is a manual label nudge in data units (degrees for EPSG:4326),
// applied to the centroid-derived label anchor of one named feature.
type Offset struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

// Table maps feature display names to manual label offsets. Automatic
// centroid placement misfires on small or oddly shaped polygons; the table
// carries the hand-tuned corrections as data rather than per-feature code.
type Table struct {
	overrides map[string]Offset
}

// NewTable builds a table from an explicit override map.
func NewTable(overrides map[string]Offset) *Table {
	m := make(map[string]Offset, len(overrides))
	for k, v := range overrides {
		m[k] = v
	}
	return &Table{overrides: m}
}

// DefaultTable returns the built-in overrides for the Washington county
// layer. San Juan is an archipelago whose centroid falls in open water,
// Island is a thin north-south sliver, and Kitsap's centroid sits on the
// Hood Canal shoreline.
func DefaultTable() *Table {
	return NewTable(map[string]Offset{
		"San Juan": {DX: -0.24, DY: 0.12},
		"Island":   {DX: 0.14, DY: -0.10},
		"Kitsap":   {DX: -0.08, DY: -0.12},
	})
}

// Lookup returns the offset configured for the given name, or the zero
// offset for names with no override. Matching is exact.
func (t *Table) Lookup(name string) Offset {
	if t == nil {
		return Offset{}
	}
	return t.overrides[name]
}

// Len returns the number of configured overrides.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.overrides)
}

// tableFile is the on-disk YAML shape of an override table.
type tableFile struct {
	Overrides map[string]Offset `yaml:"overrides"`
}

// LoadTable reads an override table from a YAML file of the form:
//
//	overrides:
//	  San Juan: {dx: -0.24, dy: 0.12}
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "label: read offsets file %s", path)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "label: parse offsets file %s", path)
	}
	return NewTable(f.Overrides), nil
}
